package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/repository"
)

// recordingPrinter captures every job it is given
type recordingPrinter struct {
	jobs      []domain.PrintJob
	err       error
	form      *Form
	stateSeen PrintState
}

func (p *recordingPrinter) Print(ctx context.Context, job domain.PrintJob) (string, error) {
	p.jobs = append(p.jobs, job)
	if p.form != nil {
		p.stateSeen = p.form.State()
	}
	if p.err != nil {
		return "", p.err
	}
	return "/tmp/" + job.Draft.InvoiceNumber + ".txt", nil
}

type recordingAlerter struct {
	messages  []string
	missing   [][]domain.Field
	form      *Form
	stateSeen PrintState
}

func (a *recordingAlerter) Alert(message string, missing []domain.Field) {
	a.messages = append(a.messages, message)
	a.missing = append(a.missing, missing)
	if a.form != nil {
		a.stateSeen = a.form.State()
	}
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local) }

func newTestForm(t *testing.T, store repository.KeyValueStore) (*Form, *recordingPrinter, *recordingAlerter) {
	t.Helper()
	printer := &recordingPrinter{}
	alerter := &recordingAlerter{}
	var prefs *Preferences
	if store != nil {
		prefs = NewPreferences(store, nil)
	}
	f := NewForm(context.Background(), FormConfig{
		Language:    domain.LanguageFrench,
		Preferences: prefs,
		Printer:     printer,
		Alerter:     alerter,
		Now:         fixedNow,
	})
	printer.form = f
	alerter.form = f
	return f, printer, alerter
}

func fillRequired(ctx context.Context, f *Form) {
	f.SetField(ctx, domain.FieldInvoiceNumber, "F-2026-001")
	f.SetField(ctx, domain.FieldSenderName, "Atelier Boréal")
	f.SetField(ctx, domain.FieldSenderAddress, "123 rue Principale, Québec")
	f.SetField(ctx, domain.FieldSenderPhone, "418-555-0100")
	f.SetField(ctx, domain.FieldReceiverName, "Client Inc.")
	f.SetField(ctx, domain.FieldTPSCode, "123456789RT0001")
	f.SetField(ctx, domain.FieldTVQCode, "1234567890TQ0001")
}

func TestNewForm_Defaults(t *testing.T) {
	f, _, _ := newTestForm(t, nil)

	if got := f.Value(domain.FieldInvoiceDate); got != "2026-10-17" {
		t.Fatalf("expected today's date, got %q", got)
	}
	if len(f.Items()) != 0 {
		t.Fatalf("expected no items")
	}
	if f.State() != PrintIdle {
		t.Fatalf("expected idle state, got %s", f.State())
	}
}

func TestAddItem_ValidSequence(t *testing.T) {
	f, _, _ := newTestForm(t, nil)

	drafts := []domain.ItemDraft{
		{Description: "Design", Quantity: "3", BasePrice: "80"},
		{Description: "Hébergement", Quantity: "12", BasePrice: "9.99"},
		{Description: "Design", Quantity: "3", BasePrice: "80"},
	}
	var want float64
	for _, d := range drafts {
		f.SetItemDraft(d)
		if !f.AddItem() {
			t.Fatalf("expected %+v to be added", d)
		}
		item, _ := d.LineItem()
		want += item.TotalPrice
		if !f.ItemDraft().IsEmpty() {
			t.Fatalf("draft not reset after add: %+v", f.ItemDraft())
		}
	}

	if got := len(f.Items()); got != len(drafts) {
		t.Fatalf("expected %d items, got %d", len(drafts), got)
	}
	if got := f.Totals().Subtotal; got != want {
		t.Fatalf("subtotal = %v, want %v", got, want)
	}
	if f.Items()[0].Description != "Design" || f.Items()[1].Description != "Hébergement" {
		t.Fatalf("items not kept in insertion order: %+v", f.Items())
	}
}

func TestAddItem_IncompleteIsNoop(t *testing.T) {
	tests := []domain.ItemDraft{
		{Description: "", Quantity: "1", BasePrice: "1"},
		{Description: "x", Quantity: "", BasePrice: "1"},
		{Description: "x", Quantity: "1", BasePrice: ""},
		{Description: "x", Quantity: "deux", BasePrice: "1"},
	}

	for _, d := range tests {
		f, _, _ := newTestForm(t, nil)
		f.SetItemDraft(domain.ItemDraft{Description: "ok", Quantity: "1", BasePrice: "5"})
		f.AddItem()

		f.SetItemDraft(d)
		if f.AddItem() {
			t.Fatalf("draft %+v should be rejected", d)
		}
		if len(f.Items()) != 1 {
			t.Fatalf("item list changed for %+v", d)
		}
		if f.ItemDraft() != d {
			t.Fatalf("rejected draft should be kept for editing")
		}
	}
}

func TestRemoveItem(t *testing.T) {
	f, _, _ := newTestForm(t, nil)
	for _, desc := range []string{"a", "b", "c"} {
		f.SetItemDraft(domain.ItemDraft{Description: desc, Quantity: "1", BasePrice: "10"})
		f.AddItem()
	}
	snapshot := f.Draft()

	if err := f.RemoveItem(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := f.Items()
	if len(items) != 2 || items[0].Description != "b" || items[1].Description != "c" {
		t.Fatalf("unexpected items after removal: %+v", items)
	}
	if len(snapshot.Items) != 3 || snapshot.Items[0].Description != "a" {
		t.Fatalf("removal must not affect earlier snapshots: %+v", snapshot.Items)
	}
	if f.Totals().Subtotal != 20 {
		t.Fatalf("expected subtotal 20, got %v", f.Totals().Subtotal)
	}
}

func TestRemoveItem_OutOfRange(t *testing.T) {
	f, _, _ := newTestForm(t, nil)
	f.SetItemDraft(domain.ItemDraft{Description: "a", Quantity: "1", BasePrice: "10"})
	f.AddItem()

	for _, i := range []int{-1, 1, 5} {
		err := f.RemoveItem(i)
		if !errors.Is(err, ErrItemOutOfRange) {
			t.Fatalf("RemoveItem(%d) err = %v, want ErrItemOutOfRange", i, err)
		}
	}
	if len(f.Items()) != 1 {
		t.Fatalf("out of range removal changed the list")
	}
}

func TestBlur_TouchGatesVisibility(t *testing.T) {
	f, _, _ := newTestForm(t, nil)

	if f.VisibleError(domain.FieldInvoiceNumber) != "" {
		t.Fatalf("untouched empty field must not show an error")
	}

	f.Blur(domain.FieldInvoiceNumber)
	if !f.Touched(domain.FieldInvoiceNumber) {
		t.Fatalf("expected field touched after blur")
	}
	if got := f.VisibleError(domain.FieldInvoiceNumber); got != "Le numéro de facture est requis" {
		t.Fatalf("unexpected message %q", got)
	}
	if f.VisibleError(domain.FieldSenderName) != "" {
		t.Fatalf("other fields must stay hidden")
	}

	f.SetField(context.Background(), domain.FieldInvoiceNumber, "F-1")
	f.Blur(domain.FieldInvoiceNumber)
	if f.VisibleError(domain.FieldInvoiceNumber) != "" {
		t.Fatalf("expected error cleared after filling the field")
	}

	f.Blur(domain.FieldSenderEmail)
	if f.VisibleError(domain.FieldSenderEmail) != "" {
		t.Fatalf("optional field must not error")
	}
}

func TestPrint_AllFieldsFilled(t *testing.T) {
	ctx := context.Background()
	f, printer, alerter := newTestForm(t, nil)
	fillRequired(ctx, f)
	f.SetItemDraft(domain.ItemDraft{Description: "Service", Quantity: "2", BasePrice: "100"})
	f.AddItem()

	outcome, err := f.Print(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Printed() || outcome.Blocked() {
		t.Fatalf("expected printed outcome, got %+v", outcome)
	}
	if len(printer.jobs) != 1 {
		t.Fatalf("expected exactly one print, got %d", len(printer.jobs))
	}
	if len(alerter.messages) != 0 {
		t.Fatalf("no alert expected, got %v", alerter.messages)
	}
	if printer.stateSeen != PrintPrinting {
		t.Fatalf("printer should run in printing state, saw %s", printer.stateSeen)
	}
	if f.State() != PrintIdle {
		t.Fatalf("expected return to idle, got %s", f.State())
	}

	job := printer.jobs[0]
	if job.ID == "" || job.ID != outcome.JobID {
		t.Fatalf("job id not propagated: %q vs %q", job.ID, outcome.JobID)
	}
	if job.Totals.Subtotal != 200 || job.Draft.InvoiceNumber != "F-2026-001" {
		t.Fatalf("unexpected job snapshot %+v", job)
	}
	for _, field := range domain.RequiredFields() {
		if f.VisibleError(field) != "" {
			t.Fatalf("%s should have no error", field)
		}
	}
}

func TestPrint_MissingFieldBlocks(t *testing.T) {
	ctx := context.Background()
	f, printer, alerter := newTestForm(t, nil)
	fillRequired(ctx, f)
	f.SetField(ctx, domain.FieldReceiverName, "")

	outcome, err := f.Print(ctx)
	if err != nil {
		t.Fatalf("blocked print is not an error: %v", err)
	}
	if !outcome.Blocked() || outcome.Printed() {
		t.Fatalf("expected blocked outcome, got %+v", outcome)
	}
	if len(printer.jobs) != 0 {
		t.Fatalf("printer must not be invoked")
	}
	if len(alerter.messages) != 1 || alerter.messages[0] != domain.LanguageFrench.PrintBlockedMessage() {
		t.Fatalf("expected one blocking alert, got %v", alerter.messages)
	}
	if len(alerter.missing[0]) != 1 || alerter.missing[0][0] != domain.FieldReceiverName {
		t.Fatalf("unexpected missing list %v", alerter.missing[0])
	}
	if alerter.stateSeen != PrintBlocked {
		t.Fatalf("alert should fire in blocked state, saw %s", alerter.stateSeen)
	}
	if f.State() != PrintIdle {
		t.Fatalf("expected return to idle, got %s", f.State())
	}
}

func TestPrint_MarksEveryRequiredFieldTouched(t *testing.T) {
	f, printer, alerter := newTestForm(t, nil)

	if _, err := f.Print(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, field := range domain.RequiredFields() {
		if !f.Touched(field) {
			t.Fatalf("%s should be touched after print attempt", field)
		}
	}
	// date defaults to today, everything else is empty
	if f.VisibleError(domain.FieldInvoiceDate) != "" {
		t.Fatalf("default date should pass")
	}
	if f.VisibleError(domain.FieldSenderName) == "" || f.VisibleError(domain.FieldTVQCode) == "" {
		t.Fatalf("expected visible errors on empty required fields")
	}
	if f.Touched(domain.FieldSenderEmail) {
		t.Fatalf("optional fields are not touched by print")
	}
	if len(printer.jobs) != 0 || len(alerter.messages) != 1 {
		t.Fatalf("expected blocked print, jobs=%d alerts=%d", len(printer.jobs), len(alerter.messages))
	}

	// the alert lists exactly the fields MissingFields reports
	want := f.MissingFields()
	got := alerter.missing[0]
	if len(got) != len(want) {
		t.Fatalf("alert listed %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("alert listed %v, want %v", got, want)
		}
	}
}

func TestPrint_PrinterFailure(t *testing.T) {
	ctx := context.Background()
	f, printer, _ := newTestForm(t, nil)
	fillRequired(ctx, f)
	printer.err = errors.New("spooler offline")

	_, err := f.Print(ctx)
	if err == nil || !errors.Is(err, printer.err) {
		t.Fatalf("expected wrapped printer error, got %v", err)
	}
	if f.State() != PrintIdle {
		t.Fatalf("expected idle after failure, got %s", f.State())
	}
}

func TestPrint_NoPrinter(t *testing.T) {
	ctx := context.Background()
	f := NewForm(ctx, FormConfig{Language: domain.LanguageEnglish, Now: fixedNow})
	fillRequired(ctx, f)

	if _, err := f.Print(ctx); !errors.Is(err, ErrNoPrinter) {
		t.Fatalf("expected ErrNoPrinter, got %v", err)
	}
}

func TestMissingFields(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestForm(t, nil)
	fillRequired(ctx, f)
	if missing := f.MissingFields(); len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}

	f.SetField(ctx, domain.FieldSenderPhone, " ")
	f.SetField(ctx, domain.FieldInvoiceDate, "")
	missing := f.MissingFields()
	if len(missing) != 2 || missing[0] != domain.FieldInvoiceDate || missing[1] != domain.FieldSenderPhone {
		t.Fatalf("unexpected missing fields %v", missing)
	}
	if f.Touched(domain.FieldSenderPhone) {
		t.Fatalf("MissingFields must not touch fields")
	}
}

func TestSetField_IgnoresUnknownField(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	f, _, _ := newTestForm(t, store)
	f.SetField(context.Background(), domain.Field(77), "x")
	f.Blur(domain.Field(77))

	keys, _ := store.Keys(context.Background(), "")
	if len(keys) != 0 {
		t.Fatalf("unknown field should not write, got keys %v", keys)
	}
}
