package domain

// ReminderTicket pairs a remindable ticket with its owner's delivery handle.
type ReminderTicket struct {
	Ticket        Ticket `json:"ticket"`
	OwnerName     string `json:"owner_name"`
	OwnerDiscord  string `json:"owner_discord_id"`
	BuyerName     string `json:"buyer_name,omitempty"`
	BuyerEmail    string `json:"buyer_email,omitempty"`
	DaysUntilShow int    `json:"days_until_show"`
	Urgent        bool   `json:"urgent"`
}

type ReminderOutcome string

const (
	ReminderSent   ReminderOutcome = "sent"   // gateway returned a message id
	ReminderFailed ReminderOutcome = "failed" // gateway returned no id
	ReminderError  ReminderOutcome = "error"  // send or persist blew up
)

type ReminderResult struct {
	TicketID  uint            `json:"ticket_id"`
	Status    ReminderOutcome `json:"status"`
	MessageID string          `json:"message_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// RunSummary is what one selector+dispatcher pass reports back.
type RunSummary struct {
	Checked int              `json:"checked"`
	Results []ReminderResult `json:"results"`
}
