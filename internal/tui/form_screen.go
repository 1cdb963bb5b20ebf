package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/facturier/internal/app"
	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// add row columns
const (
	draftDescription = iota
	draftQuantity
	draftPrice
	draftCount
)

type targetKind int

const (
	targetField targetKind = iota
	targetItem             // remove button of a committed item
	targetDraft            // add row input
	targetAdd
	targetPrint
)

// focusTarget is one stop of the tab order
type focusTarget struct {
	kind  targetKind
	field domain.Field
	index int
}

// alertOverlay is the blocking dialog raised by a refused print
type alertOverlay struct {
	message string
	missing []domain.Field
	visible bool
}

// Alert implements service.Alerter
func (a *alertOverlay) Alert(message string, missing []domain.Field) {
	a.message = message
	a.missing = append([]domain.Field(nil), missing...)
	a.visible = true
}

func (a *alertOverlay) dismiss() {
	a.visible = false
}

// FormModel is the invoice screen. It keeps one Input per field and
// mirrors every edit into the service.Form, which owns the state.
type FormModel struct {
	ctx   context.Context
	form  *service.Form
	alert *alertOverlay
	lang  domain.Language
	text  domain.Text

	fields []Input
	draft  [draftCount]Input
	focus  int

	status string
	err    error
}

// NewFormModel creates the screen over a fresh draft
func NewFormModel(ctx context.Context, a *app.App) *FormModel {
	alert := &alertOverlay{}
	return newFormModel(ctx, a.NewForm(ctx, alert), alert)
}

func newFormModel(ctx context.Context, form *service.Form, alert *alertOverlay) *FormModel {
	lang := form.Language()
	m := &FormModel{
		ctx:    ctx,
		form:   form,
		alert:  alert,
		lang:   lang,
		text:   lang.Text(),
		fields: make([]Input, len(domain.AllFields())),
	}

	for _, f := range domain.AllFields() {
		typ, width := InputText, 34
		switch f {
		case domain.FieldInvoiceDate:
			typ, width = InputDate, 12
		case domain.FieldInvoiceNumber:
			width = 20
		}
		in := NewInput(typ, "", width)
		if f == domain.FieldInvoiceDate {
			in.model.Placeholder = "YYYY-MM-DD"
		}
		in.SetValue(form.Value(f))
		m.fields[f] = in
	}

	m.draft[draftDescription] = NewInput(InputText, m.text.Description, 30)
	m.draft[draftQuantity] = NewInput(InputNumber, m.text.Quantity, 9)
	m.draft[draftPrice] = NewInput(InputNumber, m.text.UnitPrice, 12)

	m.fields[domain.FieldInvoiceNumber].Focus()
	return m
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

// targets lists the tab order: header, sender, receiver, tax codes, the
// remove button of each item, the add row and the print button
func (m *FormModel) targets() []focusTarget {
	var t []focusTarget
	for _, f := range domain.AllFields() {
		t = append(t, focusTarget{kind: targetField, field: f})
	}
	for i := range m.form.Items() {
		t = append(t, focusTarget{kind: targetItem, index: i})
	}
	for i := 0; i < draftCount; i++ {
		t = append(t, focusTarget{kind: targetDraft, index: i})
	}
	t = append(t, focusTarget{kind: targetAdd}, focusTarget{kind: targetPrint})
	return t
}

func (m *FormModel) current() focusTarget {
	t := m.targets()
	if m.focus >= len(t) {
		m.focus = len(t) - 1
	}
	return t[m.focus]
}

// input returns the Input behind a target, nil for buttons
func (m *FormModel) input(t focusTarget) *Input {
	switch t.kind {
	case targetField:
		return &m.fields[t.field]
	case targetDraft:
		return &m.draft[t.index]
	}
	return nil
}

// setFocus leaves the current target, blurring its field, and enters target i
func (m *FormModel) setFocus(i int) tea.Cmd {
	cur := m.current()
	if in := m.input(cur); in != nil {
		in.Blur()
	}
	if cur.kind == targetField {
		m.form.Blur(cur.field)
	}

	n := len(m.targets())
	m.focus = ((i % n) + n) % n
	if in := m.input(m.current()); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *FormModel) indexOf(kind targetKind, index int) int {
	for i, t := range m.targets() {
		if t.kind == kind && t.index == index {
			return i
		}
	}
	return 0
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.alert.visible {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, DefaultKeyMap.Dismiss) {
			m.alert.dismiss()
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		cur := m.current()
		switch {
		case key.Matches(k, DefaultKeyMap.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(k, DefaultKeyMap.Prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(k, DefaultKeyMap.Print):
			m.print()
			return m, nil
		case key.Matches(k, DefaultKeyMap.Select):
			return m, m.activate(cur)
		case cur.kind == targetItem && key.Matches(k, DefaultKeyMap.Remove):
			return m, m.removeItem(cur.index)
		}
	}

	return m, m.updateInput(msg)
}

// activate handles enter on the focused target
func (m *FormModel) activate(t focusTarget) tea.Cmd {
	switch t.kind {
	case targetItem:
		return m.removeItem(t.index)
	case targetDraft, targetAdd:
		return m.addItem()
	case targetPrint:
		m.print()
		return nil
	default:
		return m.setFocus(m.focus + 1)
	}
}

// updateInput forwards msg to the focused input and mirrors a changed value
// into the form
func (m *FormModel) updateInput(msg tea.Msg) tea.Cmd {
	cur := m.current()
	in := m.input(cur)
	if in == nil {
		return nil
	}

	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return cmd
	}

	m.status, m.err = "", nil
	if cur.kind == targetField {
		m.form.SetField(m.ctx, cur.field, in.Value())
	} else {
		m.form.SetItemDraft(domain.ItemDraft{
			Description: m.draft[draftDescription].Value(),
			Quantity:    m.draft[draftQuantity].Value(),
			BasePrice:   m.draft[draftPrice].Value(),
		})
	}
	return cmd
}

func (m *FormModel) addItem() tea.Cmd {
	if !m.form.AddItem() {
		return nil
	}
	for i := range m.draft {
		m.draft[i].SetValue("")
	}
	// the new item shifted the add row down by one
	if m.current().kind == targetDraft || m.current().kind == targetAdd {
		m.focus++
	}
	return m.setFocus(m.indexOf(targetDraft, draftDescription))
}

// removeItem drops item i; focus stays on the same position, which is now
// the next item or the add row
func (m *FormModel) removeItem(i int) tea.Cmd {
	if err := m.form.RemoveItem(i); err != nil {
		m.err = err
		return nil
	}
	if in := m.input(m.current()); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *FormModel) print() {
	outcome, err := m.form.Print(m.ctx)
	switch {
	case err != nil:
		m.status, m.err = "", err
	case outcome.Printed():
		m.status, m.err = fmt.Sprintf("%s %s", m.text.Printed, outcome.Output), nil
	}
}

func (m *FormModel) View() string {
	if m.alert.visible {
		return m.viewAlert()
	}

	var b strings.Builder

	// Header
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(titleStyle.Render(m.text.Title)),
		columnStyle.Render(m.viewFields(domain.FieldInvoiceNumber, domain.FieldInvoiceDate)),
	))
	b.WriteString("\n\n")

	// Parties
	var sender, receiver []domain.Field
	for _, f := range domain.AllFields() {
		switch {
		case f.IsSender():
			sender = append(sender, f)
		case f.IsReceiver():
			receiver = append(receiver, f)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(titleStyle.Render(m.text.From)+"\n"+m.viewFields(sender...)),
		columnStyle.Render(titleStyle.Render(m.text.BilledTo)+"\n"+m.viewFields(receiver...)),
	))
	b.WriteString("\n\n")

	// Tax codes
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(m.viewFields(domain.FieldTPSCode)),
		columnStyle.Render(m.viewFields(domain.FieldTVQCode)),
	))
	b.WriteString("\n\n")

	b.WriteString(m.viewItems())
	b.WriteString("\n")
	b.WriteString(m.viewTotals())
	b.WriteString("\n")

	cur := m.current()
	b.WriteString(Button{Label: m.text.Print, Focused: cur.kind == targetPrint}.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.text.Help))
	return b.String()
}

// viewFields renders label, input and visible error of each field
func (m *FormModel) viewFields(fields ...domain.Field) string {
	var parts []string
	for _, f := range fields {
		in := m.fields[f]
		msg := m.form.VisibleError(f)
		in.Invalid = msg != ""

		label := subtitleStyle
		if in.Focused() {
			label = labelStyle.Foreground(primaryColor)
		}
		s := label.Render(m.lang.Label(f)) + "\n" + in.View()
		if msg != "" {
			s += "\n" + errorStyle.Render(msg)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

func (m *FormModel) viewItems() string {
	var b strings.Builder
	cur := m.current()

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-30s %10s %13s %13s",
		m.text.Description, m.text.Quantity, m.text.UnitPrice, m.text.Price)) + "\n")

	for i, item := range m.form.Items() {
		remove := Button{
			Label:   m.text.Remove,
			Variant: ButtonOutline,
			Focused: cur.kind == targetItem && cur.index == i,
		}
		b.WriteString(fmt.Sprintf("%-30s %10s %13s %13s  %s\n",
			truncateStr(item.Description, 30),
			domain.FormatQuantity(item.Quantity),
			domain.FormatMoney(item.BasePrice),
			domain.FormatMoney(item.TotalPrice),
			remove.View(),
		))
	}

	// Add row, always present
	add := Button{Label: m.text.Add, Focused: cur.kind == targetAdd}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.draft[draftDescription].View(), " ",
		m.draft[draftQuantity].View(), " ",
		m.draft[draftPrice].View(), "  ",
		add.View(),
	))
	b.WriteString("\n")
	return b.String()
}

func (m *FormModel) viewTotals() string {
	t := m.form.Totals()
	line := func(label string, amount float64) string {
		return fmt.Sprintf("%54s %13s", label, domain.FormatMoney(amount))
	}
	return strings.Join([]string{
		line(m.text.Subtotal, t.Subtotal),
		line(m.text.TPS, t.TPS),
		line(m.text.TVQ, t.TVQ),
		totalStyle.Render(line(m.text.Total, t.Total)),
	}, "\n") + "\n"
}

func (m *FormModel) viewAlert() string {
	var b strings.Builder
	b.WriteString(labelStyle.Foreground(warningColor).Render(m.alert.message))
	if len(m.alert.missing) > 0 {
		b.WriteString("\n\n" + m.text.Missing + "\n")
		for _, f := range m.alert.missing {
			b.WriteString("  • " + fieldTitle(m.lang, f) + "\n")
		}
	}
	b.WriteString("\n" + helpStyle.Render("enter / esc: OK"))
	return alertStyle.Render(b.String())
}
