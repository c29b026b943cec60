package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// RecordSentRequest reports a delivery performed by an external sender.
type RecordSentRequest struct {
	TicketID  uint   `json:"ticket_id"`
	MessageID string `json:"message_id"`
}

func (req *RecordSentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.MessageID, validation.Required),
	)
}

// AckRequest confirms delivery for a ticket on behalf of a Discord identity.
type AckRequest struct {
	TicketID  uint   `json:"ticket_id"`
	DiscordID string `json:"discord_id"`
}

func (req *AckRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.DiscordID, validation.Required),
	)
}
