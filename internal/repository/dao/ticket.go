package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`
	User   User

	Artist    string    `gorm:"not null"`
	EventDate time.Time `gorm:"not null;index"`
	Location  string    `gorm:"not null"`
	Section   string
	Row       string
	Seat      string
	Quantity  int `gorm:"not null"`

	Cost         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CostCurrency string          `gorm:"not null"`

	Status string `gorm:"not null;index"`

	DeliveryReminderSent         bool `gorm:"not null;default:false"`
	LastReminderSentAt           *time.Time
	DeliveryReminderAcknowledged bool `gorm:"not null;default:false"`
	DiscordMessageID             *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).Preload("User").First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByUser(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_date ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) Update(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Save(&ticket)
	if result.Error != nil {
		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

func (d *TicketDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Ticket{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// FindSoldInWindow narrows reminder candidates in SQL: sold tickets whose
// event falls inside [from, to], owner preloaded. The precise eligibility
// predicate (ack flag, resend interval, linked Discord) lives in the
// reminder service where it is unit-testable.
func (d *TicketDAO) FindSoldInWindow(ctx context.Context, from, to time.Time) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", "Sold").
		Where("event_date >= ? AND event_date <= ?", from, to).
		Order("event_date ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// MarkReminderSent records a successful delivery in a single point update so
// the ticket's reminder state changes atomically with respect to itself.
func (d *TicketDAO) MarkReminderSent(ctx context.Context, id uint, sentAt time.Time, messageID string) error {
	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"delivery_reminder_sent": true,
			"last_reminder_sent_at":  sentAt,
			"discord_message_id":     messageID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

func (d *TicketDAO) MarkAcknowledged(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", id).
		Update("delivery_reminder_acknowledged", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}
