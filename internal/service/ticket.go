package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

var (
	ErrTicketNotFound  = repository.ErrTicketNotFound
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrInvalidQuantity = errors.New("ticket quantity must be positive")
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	Delete(ctx context.Context, id uint) error
}

type TicketService struct {
	repo TicketRepository
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{
		repo: repo,
	}
}

func (s *TicketService) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if ticket.Quantity <= 0 {
		return domain.Ticket{}, ErrInvalidQuantity
	}

	if ticket.Status == "" {
		ticket.Status = domain.TicketListed
	}
	if !ticket.Status.Valid() {
		return domain.Ticket{}, ErrInvalidStatus
	}

	if ticket.EventDate.Location() != time.UTC {
		ticket.EventDate = ticket.EventDate.UTC()
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetTicket hides other users' tickets behind ErrTicketNotFound rather than
// confirming they exist.
func (s *TicketService) GetTicket(ctx context.Context, userID, ticketID uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if ticket.UserID != userID {
		return domain.Ticket{}, ErrTicketNotFound
	}

	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) UpdateTicket(ctx context.Context, userID uint, ticket domain.Ticket) (domain.Ticket, error) {
	if ticket.Quantity <= 0 {
		return domain.Ticket{}, ErrInvalidQuantity
	}

	current, err := s.GetTicket(ctx, userID, ticket.ID)
	if err != nil {
		return domain.Ticket{}, err
	}

	if ticket.Status == "" {
		ticket.Status = current.Status
	}
	if !ticket.Status.Valid() {
		return domain.Ticket{}, ErrInvalidStatus
	}

	updated, err := s.repo.Update(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, userID, ticketID uint) error {
	if _, err := s.GetTicket(ctx, userID, ticketID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ticketID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
