package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

type fakeReminderTicketRepo struct {
	tickets []domain.Ticket
	owners  []domain.User

	findErr     error
	markSentErr error

	sentIDs []uint
	ackIDs  []uint
}

func (f *fakeReminderTicketRepo) FindSoldInWindow(_ context.Context, from, to time.Time) ([]domain.Ticket, []domain.User, error) {
	if f.findErr != nil {
		return nil, nil, f.findErr
	}

	tickets := make([]domain.Ticket, 0, len(f.tickets))
	owners := make([]domain.User, 0, len(f.owners))
	for i, t := range f.tickets {
		if t.Status != domain.TicketSold || t.EventDate.Before(from) || t.EventDate.After(to) {
			continue
		}
		tickets = append(tickets, t)
		owners = append(owners, f.owners[i])
	}

	return tickets, owners, nil
}

func (f *fakeReminderTicketRepo) FindByIDWithOwner(_ context.Context, id uint) (domain.Ticket, domain.User, error) {
	for i, t := range f.tickets {
		if t.ID == id {
			return t, f.owners[i], nil
		}
	}

	return domain.Ticket{}, domain.User{}, repository.ErrTicketNotFound
}

func (f *fakeReminderTicketRepo) MarkReminderSent(_ context.Context, id uint, sentAt time.Time, messageID string) error {
	if f.markSentErr != nil {
		return f.markSentErr
	}

	for i := range f.tickets {
		if f.tickets[i].ID == id {
			at := sentAt
			msg := messageID
			f.tickets[i].DeliveryReminderSent = true
			f.tickets[i].LastReminderSentAt = &at
			f.tickets[i].DiscordMessageID = &msg
			f.sentIDs = append(f.sentIDs, id)

			return nil
		}
	}

	return repository.ErrTicketNotFound
}

func (f *fakeReminderTicketRepo) MarkAcknowledged(_ context.Context, id uint) error {
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			f.tickets[i].DeliveryReminderAcknowledged = true
			f.ackIDs = append(f.ackIDs, id)

			return nil
		}
	}

	return repository.ErrTicketNotFound
}

type fakeReminderSaleRepo struct {
	sales map[uint][]domain.Sale
	err   error
}

func (f *fakeReminderSaleRepo) FindByTicket(_ context.Context, ticketID uint) ([]domain.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.sales[ticketID], nil
}

type fakeGateway struct {
	messageIDs map[uint]string
	errs       map[uint]error
	sent       []uint
}

func (f *fakeGateway) SendReminder(_ context.Context, _ string, rt domain.ReminderTicket) (string, error) {
	f.sent = append(f.sent, rt.Ticket.ID)
	if err := f.errs[rt.Ticket.ID]; err != nil {
		return "", err
	}

	return f.messageIDs[rt.Ticket.ID], nil
}

func testReminderConfig() *config.ReminderConfig {
	return &config.ReminderConfig{
		Window:      7 * 24 * time.Hour,
		ResendAfter: 24 * time.Hour,
		SendDelay:   0,
		SendTimeout: time.Second,
	}
}

func soldTicket(id uint, eventDate time.Time) domain.Ticket {
	return domain.Ticket{
		ID:        id,
		UserID:    1,
		Artist:    "Caribou",
		EventDate: eventDate,
		Location:  "Berlin",
		Quantity:  2,
		Status:    domain.TicketSold,
	}
}

func TestEligibleForReminder(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)
	resendAfter := 24 * time.Hour

	sentAt := func(d time.Duration) *time.Time {
		at := now.Add(d)
		return &at
	}

	tests := []struct {
		name   string
		ticket domain.Ticket
		want   bool
	}{
		{
			name:   "never reminded",
			ticket: domain.Ticket{},
			want:   true,
		},
		{
			name:   "sent flag without timestamp",
			ticket: domain.Ticket{DeliveryReminderSent: true},
			want:   true,
		},
		{
			name:   "acknowledged is terminal",
			ticket: domain.Ticket{DeliveryReminderAcknowledged: true},
			want:   false,
		},
		{
			name: "acknowledged wins over stale reminder",
			ticket: domain.Ticket{
				DeliveryReminderAcknowledged: true,
				DeliveryReminderSent:         true,
				LastReminderSentAt:           sentAt(-48 * time.Hour),
			},
			want: false,
		},
		{
			name: "reminded exactly 24h ago",
			ticket: domain.Ticket{
				DeliveryReminderSent: true,
				LastReminderSentAt:   sentAt(-24 * time.Hour),
			},
			want: true,
		},
		{
			name: "reminded 24h1s ago",
			ticket: domain.Ticket{
				DeliveryReminderSent: true,
				LastReminderSentAt:   sentAt(-24*time.Hour - time.Second),
			},
			want: true,
		},
		{
			name: "reminded 23h59m59s ago",
			ticket: domain.Ticket{
				DeliveryReminderSent: true,
				LastReminderSentAt:   sentAt(-24*time.Hour + time.Second),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eligibleForReminder(tt.ticket, now, resendAfter))
		})
	}
}

func TestReminderService_Eligible(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{
			soldTicket(1, now.Add(2*24*time.Hour)),  // urgent
			soldTicket(2, now.Add(5*24*time.Hour)),  // not urgent
			soldTicket(3, now.Add(3*24*time.Hour)),  // owner has no discord
			soldTicket(4, now.Add(10*24*time.Hour)), // outside window
		},
		owners: []domain.User{
			{ID: 1, Name: "Alice", DiscordID: "111"},
			{ID: 1, Name: "Alice", DiscordID: "111"},
			{ID: 2, Name: "Bob"},
			{ID: 1, Name: "Alice", DiscordID: "111"},
		},
	}
	sales := &fakeReminderSaleRepo{
		sales: map[uint][]domain.Sale{
			1: {
				{ID: 10, BuyerName: "First Buyer", BuyerEmail: "first@example.com"},
				{ID: 11, BuyerName: "Last Buyer", BuyerEmail: "last@example.com"},
			},
		},
	}

	svc := NewReminderService(tickets, sales, &fakeGateway{}, testReminderConfig())

	eligible, err := svc.Eligible(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, eligible, 2)

	assert.Equal(t, uint(1), eligible[0].Ticket.ID)
	assert.Equal(t, "111", eligible[0].OwnerDiscord)
	assert.Equal(t, 2, eligible[0].DaysUntilShow)
	assert.True(t, eligible[0].Urgent)
	assert.Equal(t, "Last Buyer", eligible[0].BuyerName)
	assert.Equal(t, "last@example.com", eligible[0].BuyerEmail)

	assert.Equal(t, uint(2), eligible[1].Ticket.ID)
	assert.Equal(t, 5, eligible[1].DaysUntilShow)
	assert.False(t, eligible[1].Urgent)
	assert.Empty(t, eligible[1].BuyerName)
}

func TestReminderService_Eligible_WindowBoundaries(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{
			soldTicket(1, now),                      // event right now
			soldTicket(2, now.Add(7*24*time.Hour)),  // exactly at window edge
			soldTicket(3, now.Add(-time.Second)),    // already past
			soldTicket(4, now.Add(7*24*time.Hour+time.Second)), // just beyond
		},
		owners: []domain.User{
			{ID: 1, DiscordID: "111"},
			{ID: 1, DiscordID: "111"},
			{ID: 1, DiscordID: "111"},
			{ID: 1, DiscordID: "111"},
		},
	}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, &fakeGateway{}, testReminderConfig())

	eligible, err := svc.Eligible(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, uint(1), eligible[0].Ticket.ID)
	assert.Equal(t, uint(2), eligible[1].Ticket.ID)
}

func TestReminderService_Run(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{
			soldTicket(1, now.Add(24*time.Hour)),
			soldTicket(2, now.Add(48*time.Hour)),
			soldTicket(3, now.Add(72*time.Hour)),
		},
		owners: []domain.User{
			{ID: 1, DiscordID: "111"},
			{ID: 1, DiscordID: "111"},
			{ID: 1, DiscordID: "111"},
		},
	}
	gateway := &fakeGateway{
		messageIDs: map[uint]string{1: "msg-1"}, // 3 gets an empty id back
		errs:       map[uint]error{2: errors.New("dm closed")},
	}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, gateway, testReminderConfig())

	summary, err := svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Checked)
	require.Len(t, summary.Results, 3)

	assert.Equal(t, domain.ReminderSent, summary.Results[0].Status)
	assert.Equal(t, "msg-1", summary.Results[0].MessageID)

	assert.Equal(t, domain.ReminderError, summary.Results[1].Status)
	assert.Contains(t, summary.Results[1].Error, "dm closed")

	assert.Equal(t, domain.ReminderFailed, summary.Results[2].Status)
	assert.Empty(t, summary.Results[2].MessageID)

	// Only the successful send is persisted; the other two stay eligible.
	assert.Equal(t, []uint{1}, tickets.sentIDs)
}

func TestReminderService_Run_SecondRunSendsNothing(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{soldTicket(1, now.Add(48 * time.Hour))},
		owners:  []domain.User{{ID: 1, DiscordID: "111"}},
	}
	gateway := &fakeGateway{messageIDs: map[uint]string{1: "msg-1"}}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, gateway, testReminderConfig())

	first, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Checked)

	second, err := svc.Run(context.Background(), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Checked)
	assert.Empty(t, second.Results)

	// A day later the same ticket is due again.
	third, err := svc.Run(context.Background(), now.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, third.Checked)
}

func TestReminderService_Run_PersistFailureKeepsMessageID(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets:     []domain.Ticket{soldTicket(1, now.Add(48 * time.Hour))},
		owners:      []domain.User{{ID: 1, DiscordID: "111"}},
		markSentErr: errors.New("db gone"),
	}
	gateway := &fakeGateway{messageIDs: map[uint]string{1: "msg-1"}}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, gateway, testReminderConfig())

	summary, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	// The DM went out but tracking did not stick, so the result reports the
	// error while keeping the provider's message id.
	assert.Equal(t, domain.ReminderError, summary.Results[0].Status)
	assert.Equal(t, "msg-1", summary.Results[0].MessageID)
	assert.Contains(t, summary.Results[0].Error, "db gone")
}

func TestReminderService_Run_SelectorFailure(t *testing.T) {
	tickets := &fakeReminderTicketRepo{findErr: errors.New("db gone")}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, &fakeGateway{}, testReminderConfig())

	_, err := svc.Run(context.Background(), time.Now().UTC())
	require.Error(t, err)
}

func TestReminderService_Acknowledge(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{soldTicket(7, now.Add(48 * time.Hour))},
		owners:  []domain.User{{ID: 1, DiscordID: "111"}},
	}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, &fakeGateway{}, testReminderConfig())

	require.NoError(t, svc.Acknowledge(context.Background(), 7, "111"))
	assert.Equal(t, []uint{7}, tickets.ackIDs)
	assert.True(t, tickets.tickets[0].DeliveryReminderAcknowledged)

	// Acknowledging twice is a silent no-op.
	require.NoError(t, svc.Acknowledge(context.Background(), 7, "111"))
	assert.Equal(t, []uint{7}, tickets.ackIDs)

	// An acknowledged ticket never comes back through the selector.
	eligible, err := svc.Eligible(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestReminderService_Acknowledge_ForeignHandle(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{
			soldTicket(7, now.Add(48 * time.Hour)),
			soldTicket(8, now.Add(48 * time.Hour)),
		},
		owners: []domain.User{
			{ID: 1, DiscordID: "111"},
			{ID: 2}, // never linked Discord
		},
	}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, &fakeGateway{}, testReminderConfig())

	// Wrong handle and unknown ticket are indistinguishable.
	err := svc.Acknowledge(context.Background(), 7, "999")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	err = svc.Acknowledge(context.Background(), 404, "111")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	// An owner without a linked handle cannot be matched by anyone.
	err = svc.Acknowledge(context.Background(), 8, "")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	assert.Empty(t, tickets.ackIDs)
}

func TestReminderService_RecordSent(t *testing.T) {
	now := time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC)

	tickets := &fakeReminderTicketRepo{
		tickets: []domain.Ticket{soldTicket(5, now.Add(48 * time.Hour))},
		owners:  []domain.User{{ID: 1, DiscordID: "111"}},
	}

	svc := NewReminderService(tickets, &fakeReminderSaleRepo{}, &fakeGateway{}, testReminderConfig())

	require.NoError(t, svc.RecordSent(context.Background(), 5, "external-msg", now))
	assert.True(t, tickets.tickets[0].DeliveryReminderSent)
	require.NotNil(t, tickets.tickets[0].DiscordMessageID)
	assert.Equal(t, "external-msg", *tickets.tickets[0].DiscordMessageID)

	err := svc.RecordSent(context.Background(), 404, "external-msg", now)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
