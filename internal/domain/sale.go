package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a partial or full disposition of a ticket's quantity to a buyer.
// Profit is denominated in the owner's base currency.
type Sale struct {
	ID           uint            `json:"id"`
	TicketID     uint            `json:"ticket_id"`
	Quantity     int             `json:"quantity"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleCurrency string          `json:"sale_currency"`
	Profit       decimal.Decimal `json:"profit"`
	BuyerName    string          `json:"buyer_name"`
	BuyerEmail   string          `json:"buyer_email"`
	TicketsSent  bool            `json:"tickets_sent"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
