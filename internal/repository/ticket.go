package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.Ticket, error)
	Update(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	FindSoldInWindow(ctx context.Context, from, to time.Time) ([]dao.Ticket, error)
	MarkReminderSent(ctx context.Context, id uint, sentAt time.Time, messageID string) error
	MarkAcknowledged(ctx context.Context, id uint) error
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, ticketDomainToDao(ticket))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return ticketDaoToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return ticketDaoToDomain(found), nil
}

// FindByIDWithOwner also surfaces the owning user, which the reminder
// acknowledgment path needs for its identity check.
func (r *TicketRepository) FindByIDWithOwner(ctx context.Context, id uint) (domain.Ticket, domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return ticketDaoToDomain(found), userDaoToDomain(found.User), nil
}

func (r *TicketRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketDaoToDomain(t))
	}

	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	current, err := r.dao.FindByID(ctx, ticket.ID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	// Owner and reminder-tracking fields are not writable through Update.
	current.Artist = ticket.Artist
	current.EventDate = ticket.EventDate
	current.Location = ticket.Location
	current.Section = ticket.Section
	current.Row = ticket.Row
	current.Seat = ticket.Seat
	current.Quantity = ticket.Quantity
	current.Cost = ticket.Cost
	current.CostCurrency = ticket.CostCurrency
	current.Status = string(ticket.Status)
	current.User = dao.User{}

	updated, err := r.dao.Update(ctx, current)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return ticketDaoToDomain(updated), nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

// FindSoldInWindow returns sold tickets whose event date falls in [from, to],
// each paired with its owner.
func (r *TicketRepository) FindSoldInWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, []domain.User, error) {
	found, err := r.dao.FindSoldInWindow(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("r.dao.FindSoldInWindow -> %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(found))
	owners := make([]domain.User, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketDaoToDomain(t))
		owners = append(owners, userDaoToDomain(t.User))
	}

	return tickets, owners, nil
}

func (r *TicketRepository) MarkReminderSent(ctx context.Context, id uint, sentAt time.Time, messageID string) error {
	if err := r.dao.MarkReminderSent(ctx, id, sentAt, messageID); err != nil {
		return fmt.Errorf("r.dao.MarkReminderSent -> %w", err)
	}

	return nil
}

func (r *TicketRepository) MarkAcknowledged(ctx context.Context, id uint) error {
	if err := r.dao.MarkAcknowledged(ctx, id); err != nil {
		return fmt.Errorf("r.dao.MarkAcknowledged -> %w", err)
	}

	return nil
}

func ticketDomainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:           t.ID,
		UserID:       t.UserID,
		Artist:       t.Artist,
		EventDate:    t.EventDate,
		Location:     t.Location,
		Section:      t.Section,
		Row:          t.Row,
		Seat:         t.Seat,
		Quantity:     t.Quantity,
		Cost:         t.Cost,
		CostCurrency: t.CostCurrency,
		Status:       string(t.Status),
	}
}

func ticketDaoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:                           t.ID,
		UserID:                       t.UserID,
		Artist:                       t.Artist,
		EventDate:                    t.EventDate,
		Location:                     t.Location,
		Section:                      t.Section,
		Row:                          t.Row,
		Seat:                         t.Seat,
		Quantity:                     t.Quantity,
		Cost:                         t.Cost,
		CostCurrency:                 t.CostCurrency,
		Status:                       domain.TicketStatus(t.Status),
		DeliveryReminderSent:         t.DeliveryReminderSent,
		LastReminderSentAt:           t.LastReminderSentAt,
		DeliveryReminderAcknowledged: t.DeliveryReminderAcknowledged,
		DiscordMessageID:             t.DiscordMessageID,
		CreatedAt:                    t.CreatedAt,
		UpdatedAt:                    t.UpdatedAt,
	}
}
