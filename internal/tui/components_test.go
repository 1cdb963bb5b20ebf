package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func typeInto(in Input, keystrokes ...string) Input {
	for _, s := range keystrokes {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
	return in
}

func runesOf(s string) []string {
	var out []string
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func TestButton_View(t *testing.T) {
	filled := Button{Label: "Imprimer"}.View()
	if !strings.Contains(filled, "Imprimer") {
		t.Fatalf("filled button missing label: %q", filled)
	}

	outline := Button{Label: "Retirer", Variant: ButtonOutline}.View()
	if !strings.Contains(outline, "[ Retirer ]") {
		t.Fatalf("outline button should be bracketed: %q", outline)
	}
}

func TestButton_StyleMerge(t *testing.T) {
	b := Button{Label: "Ajouter", Style: lipgloss.NewStyle().Width(20)}
	if w := lipgloss.Width(b.View()); w != 20 {
		t.Fatalf("expected caller width 20, got %d", w)
	}
}

func TestInput_Filtering(t *testing.T) {
	tests := []struct {
		name  string
		typ   InputType
		typed []string
		want  string
	}{
		{"text accepts anything", InputText, runesOf("Café #1"), "Café #1"},
		{"number digits and dot", InputNumber, runesOf("12.5"), "12.5"},
		{"number single separator", InputNumber, runesOf("1.2.3"), "1.23"},
		{"number comma separator", InputNumber, runesOf("1,5"), "1,5"},
		{"number leading minus", InputNumber, runesOf("-5"), "-5"},
		{"number minus only first", InputNumber, runesOf("5-"), "5"},
		{"number drops letters", InputNumber, runesOf("abc"), ""},
		{"number paste filtered", InputNumber, []string{"1a2.b3"}, "12.3"},
		{"date digits and dashes", InputDate, runesOf("2026-10-17"), "2026-10-17"},
		{"date length capped", InputDate, runesOf("2026-10-170"), "2026-10-17"},
		{"date drops letters", InputDate, runesOf("2026/x"), "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(tt.typ, "", 20)
			in.Focus()
			in = typeInto(in, tt.typed...)
			if got := in.Value(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInput_UnfocusedIgnoresKeys(t *testing.T) {
	in := typeInto(NewInput(InputText, "", 20), "x")
	if in.Value() != "" {
		t.Fatalf("unfocused input should ignore keys")
	}
}

func TestInput_ForwardsEditingKeys(t *testing.T) {
	in := NewInput(InputText, "", 20)
	in.Focus()
	in.SetValue("abc")
	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if in.Value() != "ab" {
		t.Fatalf("expected backspace forwarded, got %q", in.Value())
	}
}
