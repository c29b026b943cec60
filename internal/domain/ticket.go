package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketListed    TicketStatus = "Listed"
	TicketPending   TicketStatus = "Pending"
	TicketSold      TicketStatus = "Sold"
	TicketCancelled TicketStatus = "Cancelled"
)

// Ticket is one inventory lot (one or more physical seats) owned by a user.
// The reminder-tracking fields are only ever written by the reminder
// pipeline; DeliveryReminderAcknowledged is terminal.
type Ticket struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Artist    string    `json:"artist"`
	EventDate time.Time `json:"event_date"`
	Location  string    `json:"location"`
	Section   string    `json:"section"`
	Row       string    `json:"row"`
	Seat      string    `json:"seat"`
	Quantity  int       `json:"quantity"`

	Cost         decimal.Decimal `json:"cost"`
	CostCurrency string          `json:"cost_currency"`

	Status TicketStatus `json:"status"`

	DeliveryReminderSent         bool       `json:"delivery_reminder_sent"`
	LastReminderSentAt           *time.Time `json:"last_reminder_sent_at,omitempty"`
	DeliveryReminderAcknowledged bool       `json:"delivery_reminder_acknowledged"`
	DiscordMessageID             *string    `json:"discord_message_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketListed, TicketPending, TicketSold, TicketCancelled:
		return true
	}

	return false
}
