package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/facturier/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model: a frame around the invoice screen
type Model struct {
	form   tea.Model
	width  int
	height int
}

// New creates a new root model
func New(ctx context.Context, a *app.App) Model {
	return Model{form: NewFormModel(ctx, a)}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model - handles quit and window size, routes the rest
// to the screen
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View implements tea.Model - renders header + screen; the screen carries its own help line
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render("facturier")

	content := m.form.View()

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", innerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s", header, divider, content)

	frame := appBorderStyle.Width(innerWidth)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, frame.Render(body))
}

// Run starts the TUI
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
