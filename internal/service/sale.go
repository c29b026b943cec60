package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

var (
	ErrSaleNotFound     = repository.ErrSaleNotFound
	ErrQuantityExceeded = errors.New("sale quantity exceeds remaining ticket quantity")
)

type SaleRepository interface {
	Create(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	FindByID(ctx context.Context, id uint) (domain.Sale, error)
	FindByTicket(ctx context.Context, ticketID uint) ([]domain.Sale, error)
	Update(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	Delete(ctx context.Context, id uint) error
}

type SaleTicketRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) error
}

type SaleOwnerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// RateConverter is the FX dependency; same-currency conversion must be exact.
type RateConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

type SaleService struct {
	repo    SaleRepository
	tickets SaleTicketRepository
	users   SaleOwnerRepository
	fx      RateConverter
}

func NewSaleService(repo SaleRepository, tickets SaleTicketRepository, users SaleOwnerRepository, fx RateConverter) *SaleService {
	return &SaleService{
		repo:    repo,
		tickets: tickets,
		users:   users,
		fx:      fx,
	}
}

func (s *SaleService) CreateSale(ctx context.Context, userID uint, sale domain.Sale) (domain.Sale, error) {
	if sale.Quantity <= 0 {
		return domain.Sale{}, ErrInvalidQuantity
	}

	ticket, err := s.ownedTicket(ctx, userID, sale.TicketID)
	if err != nil {
		return domain.Sale{}, err
	}

	sold, err := s.quantitySold(ctx, ticket.ID, 0)
	if err != nil {
		return domain.Sale{}, err
	}
	if sold+sale.Quantity > ticket.Quantity {
		return domain.Sale{}, ErrQuantityExceeded
	}

	sale.Profit, err = s.computeProfit(ctx, userID, ticket, sale)
	if err != nil {
		return domain.Sale{}, err
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.recomputeStatus(ctx, ticket); err != nil {
		return domain.Sale{}, err
	}

	return created, nil
}

func (s *SaleService) ListSales(ctx context.Context, userID, ticketID uint) ([]domain.Sale, error) {
	if _, err := s.ownedTicket(ctx, userID, ticketID); err != nil {
		return nil, err
	}

	sales, err := s.repo.FindByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTicket -> %w", err)
	}

	return sales, nil
}

func (s *SaleService) UpdateSale(ctx context.Context, userID uint, sale domain.Sale) (domain.Sale, error) {
	if sale.Quantity <= 0 {
		return domain.Sale{}, ErrInvalidQuantity
	}

	current, err := s.repo.FindByID(ctx, sale.ID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	ticket, err := s.ownedTicket(ctx, userID, current.TicketID)
	if err != nil {
		return domain.Sale{}, err
	}

	sold, err := s.quantitySold(ctx, ticket.ID, current.ID)
	if err != nil {
		return domain.Sale{}, err
	}
	if sold+sale.Quantity > ticket.Quantity {
		return domain.Sale{}, ErrQuantityExceeded
	}

	sale.TicketID = current.TicketID
	sale.Profit, err = s.computeProfit(ctx, userID, ticket, sale)
	if err != nil {
		return domain.Sale{}, err
	}

	updated, err := s.repo.Update(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if err = s.recomputeStatus(ctx, ticket); err != nil {
		return domain.Sale{}, err
	}

	return updated, nil
}

func (s *SaleService) DeleteSale(ctx context.Context, userID, saleID uint) error {
	current, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	ticket, err := s.ownedTicket(ctx, userID, current.TicketID)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, saleID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return s.recomputeStatus(ctx, ticket)
}

func (s *SaleService) ownedTicket(ctx context.Context, userID, ticketID uint) (domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByID -> %w", err)
	}
	if ticket.UserID != userID {
		return domain.Ticket{}, ErrTicketNotFound
	}

	return ticket, nil
}

// quantitySold sums a ticket's sales, skipping excludeSaleID so updates can
// validate against the other sales only.
func (s *SaleService) quantitySold(ctx context.Context, ticketID, excludeSaleID uint) (int, error) {
	sales, err := s.repo.FindByTicket(ctx, ticketID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindByTicket -> %w", err)
	}

	total := 0
	for _, sale := range sales {
		if sale.ID == excludeSaleID {
			continue
		}
		total += sale.Quantity
	}

	return total, nil
}

// computeProfit converts revenue and the proportional share of the
// acquisition cost into the owner's base currency.
func (s *SaleService) computeProfit(ctx context.Context, userID uint, ticket domain.Ticket, sale domain.Sale) (decimal.Decimal, error) {
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	revenue, err := s.fx.Convert(ctx, sale.SalePrice, sale.SaleCurrency, owner.BaseCurrency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.fx.Convert -> %w", err)
	}

	cost, err := s.fx.Convert(ctx, ticket.Cost, ticket.CostCurrency, owner.BaseCurrency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.fx.Convert -> %w", err)
	}

	share := cost.
		Mul(decimal.NewFromInt(int64(sale.Quantity))).
		Div(decimal.NewFromInt(int64(ticket.Quantity)))

	return revenue.Sub(share).Round(2), nil
}

// recomputeStatus derives the ticket's aggregate status from its sales. A
// cancelled ticket stays cancelled until the owner relists it.
func (s *SaleService) recomputeStatus(ctx context.Context, ticket domain.Ticket) error {
	if ticket.Status == domain.TicketCancelled {
		return nil
	}

	sold, err := s.quantitySold(ctx, ticket.ID, 0)
	if err != nil {
		return err
	}

	status := domain.TicketListed
	switch {
	case sold >= ticket.Quantity:
		status = domain.TicketSold
	case sold > 0:
		status = domain.TicketPending
	}

	if status == ticket.Status {
		return nil
	}

	if err = s.tickets.UpdateStatus(ctx, ticket.ID, status); err != nil {
		return fmt.Errorf("s.tickets.UpdateStatus -> %w", err)
	}

	zap.L().Info("ticket status recomputed",
		zap.Uint("ticket_id", ticket.ID),
		zap.String("status", string(status)))

	return nil
}
