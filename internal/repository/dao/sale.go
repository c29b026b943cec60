package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSaleNotFound = errors.New("sale not found")

type Sale struct {
	ID       uint `gorm:"primaryKey"`
	TicketID uint `gorm:"not null;index"`
	Ticket   Ticket

	Quantity     int             `gorm:"not null"`
	SalePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SaleCurrency string          `gorm:"not null"`
	Profit       decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	BuyerName   string
	BuyerEmail  string
	TicketsSent bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SaleDAO struct {
	db *gorm.DB
}

func NewSaleDAO(db *gorm.DB) *SaleDAO {
	return &SaleDAO{
		db: db,
	}
}

func (d *SaleDAO) Insert(ctx context.Context, sale Sale) (Sale, error) {
	result := d.db.WithContext(ctx).Create(&sale)
	if result.Error != nil {
		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) FindByID(ctx context.Context, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) FindByTicket(ctx context.Context, ticketID uint) ([]Sale, error) {
	var sales []Sale

	result := d.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&sales)
	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}

func (d *SaleDAO) Update(ctx context.Context, sale Sale) (Sale, error) {
	result := d.db.WithContext(ctx).Save(&sale)
	if result.Error != nil {
		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}
