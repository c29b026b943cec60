package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[uint]domain.Ticket
	nextID  uint
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uint]domain.Ticket), nextID: 1}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	ticket.ID = f.nextID
	f.nextID++
	f.tickets[ticket.ID] = ticket

	return ticket, nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uint) (domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}

	return ticket, nil
}

func (f *fakeTicketRepo) FindByUser(_ context.Context, userID uint) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for id := uint(1); id < f.nextID; id++ {
		if ticket, ok := f.tickets[id]; ok && ticket.UserID == userID {
			out = append(out, ticket)
		}
	}

	return out, nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	f.tickets[ticket.ID] = ticket

	return ticket, nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.tickets[id]; !ok {
		return repository.ErrTicketNotFound
	}
	delete(f.tickets, id)

	return nil
}

func TestTicketService_CreateTicket(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo())

	paris := time.FixedZone("CET", 3600)
	created, err := svc.CreateTicket(context.Background(), domain.Ticket{
		UserID:    1,
		Artist:    "Justice",
		EventDate: time.Date(2025, 6, 1, 21, 0, 0, 0, paris),
		Quantity:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketListed, created.Status)
	assert.Equal(t, time.UTC, created.EventDate.Location())
	assert.Equal(t, 20, created.EventDate.Hour())
}

func TestTicketService_CreateTicket_Validation(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo())

	_, err := svc.CreateTicket(context.Background(), domain.Ticket{UserID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateTicket(context.Background(), domain.Ticket{UserID: 1, Quantity: 1, Status: "Teleported"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTicketService_GetTicket_HidesForeignTickets(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)

	created, err := svc.CreateTicket(context.Background(), domain.Ticket{UserID: 1, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.GetTicket(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = svc.GetTicket(context.Background(), 1, created.ID)
	assert.NoError(t, err)
}

func TestTicketService_UpdateTicket_KeepsStatusWhenOmitted(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)

	created, err := svc.CreateTicket(context.Background(), domain.Ticket{
		UserID:   1,
		Quantity: 2,
		Status:   domain.TicketPending,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTicket(context.Background(), 1, domain.Ticket{
		ID:       created.ID,
		UserID:   1,
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPending, updated.Status)
}

func TestTicketService_DeleteTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)

	created, err := svc.CreateTicket(context.Background(), domain.Ticket{UserID: 1, Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteTicket(context.Background(), 2, created.ID), ErrTicketNotFound)
	assert.NoError(t, svc.DeleteTicket(context.Background(), 1, created.ID))
	assert.ErrorIs(t, svc.DeleteTicket(context.Background(), 1, created.ID), ErrTicketNotFound)
}
