package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Quebec sales tax rates, applied to the subtotal
const (
	TPSRate = 0.05    // federal goods and services tax
	TVQRate = 0.09975 // provincial sales tax
)

// DateLayout is the ISO date format used for the invoice date
const DateLayout = "2006-01-02"

var (
	ErrIncompleteItem  = errors.New("description, quantity and base price are required")
	ErrInvalidQuantity = errors.New("quantity must be a number")
	ErrInvalidPrice    = errors.New("base price must be a number")
)

// LineItem is a committed row of the invoice. TotalPrice is fixed at insertion.
type LineItem struct {
	Description string
	Quantity    float64
	BasePrice   float64
	TotalPrice  float64
}

// NewLineItem creates a line item with its total computed
func NewLineItem(description string, quantity, basePrice float64) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		BasePrice:   basePrice,
		TotalPrice:  quantity * basePrice,
	}
}

// ItemDraft is the uncommitted "add row", kept as raw user input
type ItemDraft struct {
	Description string
	Quantity    string
	BasePrice   string
}

// IsComplete returns true when every column has a value
func (d ItemDraft) IsComplete() bool {
	return strings.TrimSpace(d.Description) != "" &&
		strings.TrimSpace(d.Quantity) != "" &&
		strings.TrimSpace(d.BasePrice) != ""
}

// IsEmpty returns true when nothing has been typed in the add row
func (d ItemDraft) IsEmpty() bool {
	return d.Description == "" && d.Quantity == "" && d.BasePrice == ""
}

// LineItem parses the draft into a committed line item
func (d ItemDraft) LineItem() (LineItem, error) {
	if !d.IsComplete() {
		return LineItem{}, ErrIncompleteItem
	}
	qty, err := parseAmount(d.Quantity)
	if err != nil {
		return LineItem{}, ErrInvalidQuantity
	}
	price, err := parseAmount(d.BasePrice)
	if err != nil {
		return LineItem{}, ErrInvalidPrice
	}
	return NewLineItem(strings.TrimSpace(d.Description), qty, price), nil
}

// parseAmount accepts plain decimal numbers; a comma decimal separator is
// tolerated since French keyboards produce one.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// Party is the sender or the receiver of an invoice
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// IsZero returns true when no field is set
func (p Party) IsZero() bool {
	return p == Party{}
}

// Totals are derived from the line items and never stored
type Totals struct {
	Subtotal float64
	TPS      float64
	TVQ      float64
	Total    float64
}

// CalculateTotals sums the line items and applies both sales taxes
func CalculateTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.TotalPrice
	}
	t.TPS = t.Subtotal * TPSRate
	t.TVQ = t.Subtotal * TVQRate
	t.Total = t.Subtotal + t.TPS + t.TVQ
	return t
}

// Draft is the content of the invoice being composed
type Draft struct {
	InvoiceNumber string
	InvoiceDate   string
	Sender        Party
	Receiver      Party
	TPSCode       string
	TVQCode       string
	Items         []LineItem
}

// NewDraft creates an empty draft dated today
func NewDraft(now time.Time) *Draft {
	return &Draft{
		InvoiceDate: now.Format(DateLayout),
		Items:       make([]LineItem, 0),
	}
}

// Totals recomputes the derived amounts from the current items
func (d *Draft) Totals() Totals {
	return CalculateTotals(d.Items)
}

// Clone returns a copy that shares nothing with the receiver
func (d *Draft) Clone() Draft {
	c := *d
	c.Items = make([]LineItem, len(d.Items))
	copy(c.Items, d.Items)
	return c
}

// Value returns the current value of a form field
func (d *Draft) Value(f Field) string {
	switch f {
	case FieldInvoiceNumber:
		return d.InvoiceNumber
	case FieldInvoiceDate:
		return d.InvoiceDate
	case FieldSenderName:
		return d.Sender.Name
	case FieldSenderAddress:
		return d.Sender.Address
	case FieldSenderPhone:
		return d.Sender.Phone
	case FieldSenderEmail:
		return d.Sender.Email
	case FieldReceiverName:
		return d.Receiver.Name
	case FieldReceiverAddress:
		return d.Receiver.Address
	case FieldReceiverPhone:
		return d.Receiver.Phone
	case FieldReceiverEmail:
		return d.Receiver.Email
	case FieldTPSCode:
		return d.TPSCode
	case FieldTVQCode:
		return d.TVQCode
	default:
		return ""
	}
}

// Set assigns a form field. Unknown fields are ignored.
func (d *Draft) Set(f Field, value string) {
	switch f {
	case FieldInvoiceNumber:
		d.InvoiceNumber = value
	case FieldInvoiceDate:
		d.InvoiceDate = value
	case FieldSenderName:
		d.Sender.Name = value
	case FieldSenderAddress:
		d.Sender.Address = value
	case FieldSenderPhone:
		d.Sender.Phone = value
	case FieldSenderEmail:
		d.Sender.Email = value
	case FieldReceiverName:
		d.Receiver.Name = value
	case FieldReceiverAddress:
		d.Receiver.Address = value
	case FieldReceiverPhone:
		d.Receiver.Phone = value
	case FieldReceiverEmail:
		d.Receiver.Email = value
	case FieldTPSCode:
		d.TPSCode = value
	case FieldTVQCode:
		d.TVQCode = value
	}
}
