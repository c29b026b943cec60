package repository

import (
	"context"
	"fmt"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository/dao"
)

var ErrSaleNotFound = dao.ErrSaleNotFound

type SaleDAO interface {
	Insert(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	FindByID(ctx context.Context, id uint) (dao.Sale, error)
	FindByTicket(ctx context.Context, ticketID uint) ([]dao.Sale, error)
	Update(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	Delete(ctx context.Context, id uint) error
}

type SaleRepository struct {
	dao SaleDAO
}

func NewSaleRepository(dao SaleDAO) *SaleRepository {
	return &SaleRepository{
		dao: dao,
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	created, err := r.dao.Insert(ctx, saleDomainToDao(sale))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return saleDaoToDomain(created), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (domain.Sale, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return saleDaoToDomain(found), nil
}

func (r *SaleRepository) FindByTicket(ctx context.Context, ticketID uint) ([]domain.Sale, error) {
	found, err := r.dao.FindByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTicket -> %w", err)
	}

	sales := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		sales = append(sales, saleDaoToDomain(s))
	}

	return sales, nil
}

func (r *SaleRepository) Update(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	current, err := r.dao.FindByID(ctx, sale.ID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	// A sale can never move between tickets.
	current.Quantity = sale.Quantity
	current.SalePrice = sale.SalePrice
	current.SaleCurrency = sale.SaleCurrency
	current.Profit = sale.Profit
	current.BuyerName = sale.BuyerName
	current.BuyerEmail = sale.BuyerEmail
	current.TicketsSent = sale.TicketsSent

	updated, err := r.dao.Update(ctx, current)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return saleDaoToDomain(updated), nil
}

func (r *SaleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func saleDomainToDao(s domain.Sale) dao.Sale {
	return dao.Sale{
		ID:           s.ID,
		TicketID:     s.TicketID,
		Quantity:     s.Quantity,
		SalePrice:    s.SalePrice,
		SaleCurrency: s.SaleCurrency,
		Profit:       s.Profit,
		BuyerName:    s.BuyerName,
		BuyerEmail:   s.BuyerEmail,
		TicketsSent:  s.TicketsSent,
	}
}

func saleDaoToDomain(s dao.Sale) domain.Sale {
	return domain.Sale{
		ID:           s.ID,
		TicketID:     s.TicketID,
		Quantity:     s.Quantity,
		SalePrice:    s.SalePrice,
		SaleCurrency: s.SaleCurrency,
		Profit:       s.Profit,
		BuyerName:    s.BuyerName,
		BuyerEmail:   s.BuyerEmail,
		TicketsSent:  s.TicketsSent,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
