package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ButtonVariant selects the look of a Button
type ButtonVariant int

const (
	ButtonFilled ButtonVariant = iota
	ButtonOutline
)

// Button is a stateless button. Style is merged over the variant's style,
// values set on Style win.
type Button struct {
	Label   string
	Variant ButtonVariant
	Style   lipgloss.Style
	Focused bool
}

// View renders the button
func (b Button) View() string {
	base := buttonFilledStyle
	label := "  " + b.Label + "  "
	if b.Variant == ButtonOutline {
		base = buttonOutlineStyle
		label = "[ " + b.Label + " ]"
	}
	if b.Focused {
		base = base.Reverse(true)
	}
	return b.Style.Inherit(base).Render(label)
}

// InputType restricts what can be typed into an Input
type InputType int

const (
	InputText InputType = iota
	InputNumber
	InputDate
)

// Input wraps a textinput. Every message is forwarded to the wrapped model;
// keystrokes the type does not accept are dropped first.
type Input struct {
	Type    InputType
	Invalid bool
	Style   lipgloss.Style

	model textinput.Model
}

// NewInput creates an unfocused input
func NewInput(typ InputType, placeholder string, width int) Input {
	m := textinput.New()
	m.Prompt = " "
	m.Placeholder = placeholder
	m.Width = width
	m.CharLimit = 256
	if typ == InputDate {
		m.CharLimit = len("2006-01-02")
	}
	return Input{Type: typ, model: m}
}

func (i *Input) Focus() tea.Cmd {
	return i.model.Focus()
}

func (i *Input) Blur() {
	i.model.Blur()
}

func (i Input) Focused() bool {
	return i.model.Focused()
}

func (i Input) Value() string {
	return i.model.Value()
}

func (i *Input) SetValue(v string) {
	i.model.SetValue(v)
}

// Update forwards msg to the wrapped textinput
func (i Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		k.Runes = i.accept(k.Runes)
		if len(k.Runes) == 0 {
			return i, nil
		}
		msg = k
	}

	var cmd tea.Cmd
	i.model, cmd = i.model.Update(msg)
	return i, cmd
}

// accept filters typed runes: numbers take digits, one decimal separator
// and a leading minus; dates take digits and dashes
func (i Input) accept(runes []rune) []rune {
	if i.Type == InputText {
		return runes
	}

	current := i.model.Value()
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i.Type == InputDate:
		case r == '-' && i.Type == InputNumber && current == "" && len(out) == 0:
		case (r == '.' || r == ',') && i.Type == InputNumber &&
			!strings.ContainsAny(current+string(out), ".,"):
		default:
			continue
		}
		out = append(out, r)
	}
	return out
}

// View renders the input with a left rule: red when Invalid, blue when
// focused
func (i Input) View() string {
	base := inputStyle
	switch {
	case i.Invalid:
		base = base.BorderStyle(lipgloss.ThickBorder()).BorderForeground(errorColor)
	case i.model.Focused():
		base = base.BorderForeground(primaryColor)
	}
	return i.Style.Inherit(base).Render(i.model.View())
}
