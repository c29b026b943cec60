package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

var errNegativeAmount = errors.New("amount must not be negative")

type TicketRequest struct {
	Artist       string          `json:"artist"`
	EventDate    time.Time       `json:"event_date"`
	Location     string          `json:"location"`
	Section      string          `json:"section,omitempty"`
	Row          string          `json:"row,omitempty"`
	Seat         string          `json:"seat,omitempty"`
	Quantity     int             `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	CostCurrency string          `json:"cost_currency"`
	Status       string          `json:"status,omitempty"`
}

func (req *TicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Artist, validation.Required),
		validation.Field(&req.EventDate, validation.Required),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Cost, validation.By(nonNegativeDecimal)),
		validation.Field(&req.CostCurrency, validation.Required, validation.Length(3, 3), is.UpperCase),
		validation.Field(&req.Status, validation.In("Listed", "Pending", "Sold", "Cancelled")),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return errNegativeAmount
	}

	return nil
}
