package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

// urgentWithinDays marks reminders for events this close as urgent.
const urgentWithinDays = 3

type ReminderTicketRepository interface {
	FindSoldInWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, []domain.User, error)
	FindByIDWithOwner(ctx context.Context, id uint) (domain.Ticket, domain.User, error)
	MarkReminderSent(ctx context.Context, id uint, sentAt time.Time, messageID string) error
	MarkAcknowledged(ctx context.Context, id uint) error
}

type ReminderSaleRepository interface {
	FindByTicket(ctx context.Context, ticketID uint) ([]domain.Sale, error)
}

// MessagingGateway delivers one reminder DM and returns the provider's
// message id. An empty id with a nil error means the provider accepted the
// call but delivered nothing.
type MessagingGateway interface {
	SendReminder(ctx context.Context, discordID string, reminder domain.ReminderTicket) (string, error)
}

// ReminderService is the delivery-reminder pipeline: the selector
// (Eligible), the dispatcher (Run) and the shared acknowledgment mutation
// (Acknowledge). Both the daily scheduler and the cron HTTP endpoints call
// the same Run, so redundant triggers stay idempotent through the selector's
// resend filter.
type ReminderService struct {
	tickets ReminderTicketRepository
	sales   ReminderSaleRepository
	gateway MessagingGateway
	conf    *config.ReminderConfig
}

func NewReminderService(tickets ReminderTicketRepository, sales ReminderSaleRepository, gateway MessagingGateway, conf *config.ReminderConfig) *ReminderService {
	return &ReminderService{
		tickets: tickets,
		sales:   sales,
		gateway: gateway,
		conf:    conf,
	}
}

// eligibleForReminder is the read-only selector predicate on top of the SQL
// narrowing (sold + event inside the window). Acknowledged tickets are out
// forever; otherwise a ticket is due if it was never reminded or its last
// reminder is at least ResendAfter old. Both comparisons are inclusive.
func eligibleForReminder(t domain.Ticket, now time.Time, resendAfter time.Duration) bool {
	if t.DeliveryReminderAcknowledged {
		return false
	}

	if !t.DeliveryReminderSent || t.LastReminderSentAt == nil {
		return true
	}

	return !t.LastReminderSentAt.After(now.Add(-resendAfter))
}

func daysUntil(now, eventDate time.Time) int {
	return int(math.Ceil(eventDate.Sub(now).Hours() / 24))
}

// Eligible computes the set of tickets requiring a reminder at instant now,
// paired with their owners' Discord handles. Tickets whose owner never
// linked Discord are silently excluded.
func (s *ReminderService) Eligible(ctx context.Context, now time.Time) ([]domain.ReminderTicket, error) {
	tickets, owners, err := s.tickets.FindSoldInWindow(ctx, now, now.Add(s.conf.Window))
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindSoldInWindow -> %w", err)
	}

	eligible := make([]domain.ReminderTicket, 0, len(tickets))
	for i, t := range tickets {
		if !eligibleForReminder(t, now, s.conf.ResendAfter) {
			continue
		}
		if owners[i].DiscordID == "" {
			continue
		}

		days := daysUntil(now, t.EventDate)
		rt := domain.ReminderTicket{
			Ticket:        t,
			OwnerName:     owners[i].Name,
			OwnerDiscord:  owners[i].DiscordID,
			DaysUntilShow: days,
			Urgent:        days <= urgentWithinDays,
		}
		rt.BuyerName, rt.BuyerEmail = s.buyerContact(ctx, t.ID)

		eligible = append(eligible, rt)
	}

	return eligible, nil
}

// buyerContact is best effort: the reminder is still worth sending when the
// sale rows cannot be read. The most recent buyer wins on split sales.
func (s *ReminderService) buyerContact(ctx context.Context, ticketID uint) (string, string) {
	sales, err := s.sales.FindByTicket(ctx, ticketID)
	if err != nil {
		zap.L().Warn("could not load buyer contact for reminder",
			zap.Uint("ticket_id", ticketID),
			zap.Error(err))

		return "", ""
	}
	if len(sales) == 0 {
		return "", ""
	}

	last := sales[len(sales)-1]

	return last.BuyerName, last.BuyerEmail
}

// Run executes one selector+dispatcher pass. Sends are strictly sequential
// with a small delay between them because the messaging provider rate-limits
// DMs; one ticket's failure never aborts the batch. Only a selector failure
// returns an error.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (domain.RunSummary, error) {
	eligible, err := s.Eligible(ctx, now)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("s.Eligible -> %w", err)
	}

	summary := domain.RunSummary{
		Checked: len(eligible),
		Results: make([]domain.ReminderResult, 0, len(eligible)),
	}

	for i, rt := range eligible {
		if i > 0 && s.conf.SendDelay > 0 {
			select {
			case <-time.After(s.conf.SendDelay):
			case <-ctx.Done():
				return summary, nil
			}
		}

		result := s.dispatch(ctx, rt, now)
		summary.Results = append(summary.Results, result)

		zap.L().Info("reminder dispatched",
			zap.Uint("ticket_id", result.TicketID),
			zap.String("status", string(result.Status)),
			zap.String("message_id", result.MessageID),
			zap.String("error", result.Error))
	}

	return summary, nil
}

func (s *ReminderService) dispatch(ctx context.Context, rt domain.ReminderTicket, now time.Time) domain.ReminderResult {
	result := domain.ReminderResult{TicketID: rt.Ticket.ID}

	sendCtx := ctx
	if s.conf.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.conf.SendTimeout)
		defer cancel()
	}

	messageID, err := s.gateway.SendReminder(sendCtx, rt.OwnerDiscord, rt)
	if err != nil {
		result.Status = domain.ReminderError
		result.Error = err.Error()

		return result
	}
	if messageID == "" {
		result.Status = domain.ReminderFailed

		return result
	}

	result.MessageID = messageID

	if err = s.tickets.MarkReminderSent(ctx, rt.Ticket.ID, now, messageID); err != nil {
		// The DM is already out; the ticket stays eligible and the next
		// run will send a duplicate. Accepted at-least-once behavior.
		result.Status = domain.ReminderError
		result.Error = err.Error()

		return result
	}

	result.Status = domain.ReminderSent

	return result
}

// RecordSent persists a delivery performed by an external sender process
// driving its own send path off Eligible.
func (s *ReminderService) RecordSent(ctx context.Context, ticketID uint, messageID string, now time.Time) error {
	if err := s.tickets.MarkReminderSent(ctx, ticketID, now, messageID); err != nil {
		return fmt.Errorf("s.tickets.MarkReminderSent -> %w", err)
	}

	return nil
}

// Acknowledge is the single acknowledgment mutation shared by the Discord
// button callback and the REST endpoint. The acting Discord identity must
// match the ticket owner's; a mismatch reads the same as a missing ticket so
// the endpoint cannot be used to probe ticket ids. Acknowledging twice is a
// no-op.
func (s *ReminderService) Acknowledge(ctx context.Context, ticketID uint, actorDiscordID string) error {
	ticket, owner, err := s.tickets.FindByIDWithOwner(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("s.tickets.FindByIDWithOwner -> %w", err)
	}

	if owner.DiscordID == "" || owner.DiscordID != actorDiscordID {
		return ErrTicketNotFound
	}

	if ticket.DeliveryReminderAcknowledged {
		return nil
	}

	if err = s.tickets.MarkAcknowledged(ctx, ticketID); err != nil {
		return fmt.Errorf("s.tickets.MarkAcknowledged -> %w", err)
	}

	zap.L().Info("delivery acknowledged",
		zap.Uint("ticket_id", ticketID),
		zap.String("discord_id", actorDiscordID))

	return nil
}
