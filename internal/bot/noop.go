package bot

import (
	"context"
	"errors"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

var ErrGatewayDisabled = errors.New("messaging gateway disabled")

// NoopGateway stands in when Discord is switched off. Every send fails, so
// reminder runs report "error" outcomes instead of silently dropping tickets.
type NoopGateway struct{}

func (NoopGateway) SendReminder(_ context.Context, _ string, _ domain.ReminderTicket) (string, error) {
	return "", ErrGatewayDisabled
}
