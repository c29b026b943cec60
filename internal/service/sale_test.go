package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

type fakeSaleRepo struct {
	sales  map[uint]domain.Sale
	nextID uint
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uint]domain.Sale), nextID: 1}
}

func (f *fakeSaleRepo) Create(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.ID = f.nextID
	f.nextID++
	f.sales[sale.ID] = sale

	return sale, nil
}

func (f *fakeSaleRepo) FindByID(_ context.Context, id uint) (domain.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}

	return sale, nil
}

func (f *fakeSaleRepo) FindByTicket(_ context.Context, ticketID uint) ([]domain.Sale, error) {
	var out []domain.Sale
	for id := uint(1); id < f.nextID; id++ {
		if sale, ok := f.sales[id]; ok && sale.TicketID == ticketID {
			out = append(out, sale)
		}
	}

	return out, nil
}

func (f *fakeSaleRepo) Update(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	if _, ok := f.sales[sale.ID]; !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}
	f.sales[sale.ID] = sale

	return sale, nil
}

func (f *fakeSaleRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.sales[id]; !ok {
		return repository.ErrSaleNotFound
	}
	delete(f.sales, id)

	return nil
}

type fakeSaleTicketRepo struct {
	tickets map[uint]domain.Ticket
}

func (f *fakeSaleTicketRepo) FindByID(_ context.Context, id uint) (domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}

	return ticket, nil
}

func (f *fakeSaleTicketRepo) UpdateStatus(_ context.Context, id uint, status domain.TicketStatus) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return repository.ErrTicketNotFound
	}
	ticket.Status = status
	f.tickets[id] = ticket

	return nil
}

type fakeSaleOwnerRepo struct {
	users map[uint]domain.User
}

func (f *fakeSaleOwnerRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

// fixedRateConverter converts with a static rate table keyed "FROM/TO".
type fixedRateConverter struct {
	rates map[string]string
}

func (f *fixedRateConverter) Convert(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, ok := f.rates[from+"/"+to]
	if !ok {
		return decimal.Zero, ErrUnknownCurrency
	}

	return amount.Mul(decimal.RequireFromString(rate)), nil
}

func newSaleServiceFixture() (*SaleService, *fakeSaleRepo, *fakeSaleTicketRepo) {
	saleRepo := newFakeSaleRepo()
	ticketRepo := &fakeSaleTicketRepo{
		tickets: map[uint]domain.Ticket{
			1: {
				ID:           1,
				UserID:       1,
				Quantity:     2,
				Cost:         decimal.RequireFromString("200"),
				CostCurrency: "GBP",
				Status:       domain.TicketListed,
			},
		},
	}
	userRepo := &fakeSaleOwnerRepo{
		users: map[uint]domain.User{
			1: {ID: 1, BaseCurrency: "USD"},
		},
	}
	fx := &fixedRateConverter{rates: map[string]string{"GBP/USD": "1.25"}}

	return NewSaleService(saleRepo, ticketRepo, userRepo, fx), saleRepo, ticketRepo
}

func TestSaleService_CreateSale_ProfitAndStatus(t *testing.T) {
	svc, _, tickets := newSaleServiceFixture()

	sale, err := svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("150"),
		SaleCurrency: "USD",
		BuyerName:    "Some Buyer",
	})
	require.NoError(t, err)

	// revenue 150 USD, cost share 200 GBP * 1.25 / 2 = 125 USD
	assert.True(t, sale.Profit.Equal(decimal.RequireFromString("25")), "got %v", sale.Profit)
	assert.Equal(t, domain.TicketPending, tickets.tickets[1].Status)

	// Second sale exhausts the quantity.
	_, err = svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("180"),
		SaleCurrency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketSold, tickets.tickets[1].Status)
}

func TestSaleService_CreateSale_QuantityExceeded(t *testing.T) {
	svc, _, _ := newSaleServiceFixture()

	_, err := svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     3,
		SalePrice:    decimal.RequireFromString("100"),
		SaleCurrency: "USD",
	})
	assert.ErrorIs(t, err, ErrQuantityExceeded)

	_, err = svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID: 1,
		Quantity: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSaleService_CreateSale_ForeignTicket(t *testing.T) {
	svc, _, _ := newSaleServiceFixture()

	_, err := svc.CreateSale(context.Background(), 99, domain.Sale{
		TicketID: 1,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestSaleService_UpdateSale_RevalidatesAgainstOtherSales(t *testing.T) {
	svc, _, _ := newSaleServiceFixture()

	first, err := svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("100"),
		SaleCurrency: "USD",
	})
	require.NoError(t, err)

	_, err = svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("100"),
		SaleCurrency: "USD",
	})
	require.NoError(t, err)

	// Growing the first sale to 2 would overshoot with the second in place.
	_, err = svc.UpdateSale(context.Background(), 1, domain.Sale{
		ID:           first.ID,
		Quantity:     2,
		SalePrice:    decimal.RequireFromString("100"),
		SaleCurrency: "USD",
	})
	assert.ErrorIs(t, err, ErrQuantityExceeded)

	// Keeping its own quantity is fine; the sale itself is excluded from the
	// sold total.
	_, err = svc.UpdateSale(context.Background(), 1, domain.Sale{
		ID:           first.ID,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("120"),
		SaleCurrency: "USD",
	})
	assert.NoError(t, err)
}

func TestSaleService_DeleteSale_RecomputesStatus(t *testing.T) {
	svc, _, tickets := newSaleServiceFixture()

	sale, err := svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     2,
		SalePrice:    decimal.RequireFromString("300"),
		SaleCurrency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketSold, tickets.tickets[1].Status)

	require.NoError(t, svc.DeleteSale(context.Background(), 1, sale.ID))
	assert.Equal(t, domain.TicketListed, tickets.tickets[1].Status)
}

func TestSaleService_CancelledStatusIsSticky(t *testing.T) {
	svc, _, tickets := newSaleServiceFixture()

	ticket := tickets.tickets[1]
	ticket.Status = domain.TicketCancelled
	tickets.tickets[1] = ticket

	_, err := svc.CreateSale(context.Background(), 1, domain.Sale{
		TicketID:     1,
		Quantity:     1,
		SalePrice:    decimal.RequireFromString("100"),
		SaleCurrency: "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketCancelled, tickets.tickets[1].Status)
}
