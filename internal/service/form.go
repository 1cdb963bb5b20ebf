package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/andy/facturier/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrItemOutOfRange = errors.New("line item index out of range")
	ErrNoPrinter      = errors.New("no printer configured")
)

// PrintState is the position of the form in the print gate
type PrintState int

const (
	PrintIdle PrintState = iota
	PrintValidating
	PrintBlocked
	PrintPrinting
)

// String returns the state name
func (s PrintState) String() string {
	switch s {
	case PrintIdle:
		return "idle"
	case PrintValidating:
		return "validating"
	case PrintBlocked:
		return "blocked"
	case PrintPrinting:
		return "printing"
	default:
		return "unknown"
	}
}

// Printer hands a draft to the platform's print capability and returns
// where the document went (file path, spooler job, ...)
type Printer interface {
	Print(ctx context.Context, job domain.PrintJob) (string, error)
}

// Alerter shows the blocking "fill all required fields" dialog
type Alerter interface {
	Alert(message string, missing []domain.Field)
}

// PrintOutcome reports what a print attempt did
type PrintOutcome struct {
	JobID   string
	Output  string
	Missing []domain.Field
}

// Printed returns true when the printer was invoked successfully
func (o PrintOutcome) Printed() bool {
	return o.JobID != "" && len(o.Missing) == 0
}

// Blocked returns true when required fields stopped the print
func (o PrintOutcome) Blocked() bool {
	return len(o.Missing) > 0
}

// FormConfig carries the collaborators of a Form
type FormConfig struct {
	Language    domain.Language
	Preferences *Preferences // nil disables persistence
	Printer     Printer
	Alerter     Alerter
	Logger      *slog.Logger
	Now         func() time.Time
}

// Form owns the state of the invoice being drafted: field values,
// touched and error maps, line items and the print gate. It is not safe
// for concurrent use; callers drive it from a single event loop.
type Form struct {
	draft   *domain.Draft
	newItem domain.ItemDraft
	errors  map[domain.Field]string
	touched map[domain.Field]bool
	state   PrintState

	lang    domain.Language
	prefs   *Preferences
	printer Printer
	alerter Alerter
	logger  *slog.Logger
	now     func() time.Time
}

// NewForm creates a fresh form dated today and restores the saved sender,
// receiver and tax codes
func NewForm(ctx context.Context, cfg FormConfig) *Form {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Alerter == nil {
		cfg.Alerter = nopAlerter{}
	}

	f := &Form{
		draft:   domain.NewDraft(cfg.Now()),
		errors:  make(map[domain.Field]string),
		touched: make(map[domain.Field]bool),
		state:   PrintIdle,
		lang:    cfg.Language,
		prefs:   cfg.Preferences,
		printer: cfg.Printer,
		alerter: cfg.Alerter,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}

	if f.prefs != nil {
		f.prefs.Restore(ctx, f.draft)
	}
	return f
}

// Language returns the language of messages
func (f *Form) Language() domain.Language {
	return f.lang
}

// Draft returns a copy of the current draft
func (f *Form) Draft() domain.Draft {
	return f.draft.Clone()
}

// Value returns the current value of a field
func (f *Form) Value(field domain.Field) string {
	return f.draft.Value(field)
}

// SetField updates a field. Sender and receiver changes are saved right
// away; tax codes are saved when non-empty. Storage failures are logged.
func (f *Form) SetField(ctx context.Context, field domain.Field, value string) {
	if !field.Valid() {
		return
	}
	f.draft.Set(field, value)

	if f.prefs == nil {
		return
	}

	var err error
	switch {
	case field.IsSender():
		err = f.prefs.SaveSender(ctx, f.draft.Sender)
	case field.IsReceiver():
		err = f.prefs.SaveReceiver(ctx, f.draft.Receiver)
	case field.IsTaxCode():
		err = f.prefs.SaveTaxCode(ctx, field, value)
	}
	if err != nil {
		f.logger.Warn("save field", "field", field.Key(), "err", err)
	}
}

// Blur marks a field touched and validates its current value
func (f *Form) Blur(field domain.Field) {
	if !field.Valid() {
		return
	}
	f.touched[field] = true
	f.errors[field] = domain.Validate(field, f.draft.Value(field), f.lang)
}

// Touched returns true once the field has lost focus or a print was tried
func (f *Form) Touched(field domain.Field) bool {
	return f.touched[field]
}

// VisibleError returns the validation message to display: empty until the
// field has been touched
func (f *Form) VisibleError(field domain.Field) string {
	if !f.touched[field] {
		return ""
	}
	return f.errors[field]
}

// ItemDraft returns the uncommitted add row
func (f *Form) ItemDraft() domain.ItemDraft {
	return f.newItem
}

// SetItemDraft replaces the uncommitted add row
func (f *Form) SetItemDraft(d domain.ItemDraft) {
	f.newItem = d
}

// AddItem commits the add row. An incomplete or non-numeric row is
// silently ignored and false is returned.
func (f *Form) AddItem() bool {
	item, err := f.newItem.LineItem()
	if err != nil {
		f.logger.Debug("add item rejected", "err", err)
		return false
	}
	f.draft.Items = append(f.draft.Items, item)
	f.newItem = domain.ItemDraft{}
	return true
}

// RemoveItem deletes the item at position i; later items shift down
func (f *Form) RemoveItem(i int) error {
	if i < 0 || i >= len(f.draft.Items) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, i)
	}
	f.draft.Items = append(f.draft.Items[:i:i], f.draft.Items[i+1:]...)
	return nil
}

// Items returns a copy of the committed line items
func (f *Form) Items() []domain.LineItem {
	items := make([]domain.LineItem, len(f.draft.Items))
	copy(items, f.draft.Items)
	return items
}

// Totals recomputes the derived amounts from the current items
func (f *Form) Totals() domain.Totals {
	return f.draft.Totals()
}

// State returns the position in the print gate. Print runs to completion,
// so callers outside Print always observe PrintIdle.
func (f *Form) State() PrintState {
	return f.state
}

// MissingFields lists the required fields whose current value fails
// validation, in screen order
func (f *Form) MissingFields() []domain.Field {
	var missing []domain.Field
	for _, field := range domain.RequiredFields() {
		if domain.Validate(field, f.draft.Value(field), f.lang) != "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Print validates every required field, marking each touched. If any fails
// the alert is raised and nothing is printed; otherwise the printer is
// invoked once with a snapshot of the draft.
func (f *Form) Print(ctx context.Context) (PrintOutcome, error) {
	defer func() { f.state = PrintIdle }()

	f.state = PrintValidating
	for _, field := range domain.RequiredFields() {
		f.Blur(field)
	}
	missing := f.MissingFields()

	if len(missing) > 0 {
		f.state = PrintBlocked
		f.alerter.Alert(f.lang.PrintBlockedMessage(), missing)
		f.logger.Info("print blocked", "missing", len(missing))
		return PrintOutcome{Missing: missing}, nil
	}

	f.state = PrintPrinting
	if f.printer == nil {
		return PrintOutcome{}, ErrNoPrinter
	}

	job := domain.PrintJob{
		ID:        uuid.NewString(),
		Draft:     f.draft.Clone(),
		Totals:    f.draft.Totals(),
		Language:  f.lang,
		CreatedAt: f.now(),
	}
	output, err := f.printer.Print(ctx, job)
	if err != nil {
		f.logger.Error("print failed", "job", job.ID, "err", err)
		return PrintOutcome{}, fmt.Errorf("print invoice %s: %w", job.Draft.InvoiceNumber, err)
	}

	f.logger.Info("printed", "job", job.ID, "invoice", job.Draft.InvoiceNumber, "output", output)
	return PrintOutcome{JobID: job.ID, Output: output}, nil
}

type nopAlerter struct{}

func (nopAlerter) Alert(string, []domain.Field) {}
