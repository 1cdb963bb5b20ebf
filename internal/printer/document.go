package printer

import (
	"fmt"
	"strings"

	"github.com/andy/facturier/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// PageWidth is the width of the printed document in columns
const PageWidth = 72

var (
	columnStyle = lipgloss.NewStyle().Width(PageWidth / 2)
	rightStyle  = lipgloss.NewStyle().Width(PageWidth / 2).Align(lipgloss.Right)
)

// Render lays out the draft the way it is printed: inputs become plain text
// and the editing controls (remove buttons, add row, print button) are left
// out. The result carries no colour codes.
func Render(job domain.PrintJob) string {
	d := job.Draft
	text := job.Language.Text()

	var b strings.Builder

	sep := strings.Repeat("=", PageWidth)
	line := strings.Repeat("-", PageWidth)

	// Header
	dateLine := fmt.Sprintf("%s: %s", job.Language.Caption(domain.FieldInvoiceDate), d.InvoiceDate)
	numberLine := fmt.Sprintf("%s: %s", job.Language.Caption(domain.FieldInvoiceNumber), d.InvoiceNumber)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(text.Title),
		rightStyle.Render(dateLine+"\n"+numberLine),
	))
	b.WriteString("\n" + sep + "\n\n")

	// Sender and receiver side by side
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(partyBlock(text.From, d.Sender)),
		columnStyle.Render(partyBlock(text.BilledTo, d.Receiver)),
	))
	b.WriteString("\n\n")

	// Tax registration numbers
	b.WriteString(fmt.Sprintf("%s: %s\n", job.Language.Caption(domain.FieldTPSCode), d.TPSCode))
	b.WriteString(fmt.Sprintf("%s: %s\n", job.Language.Caption(domain.FieldTVQCode), d.TVQCode))

	// Items
	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-32s %10s %14s %13s\n",
		text.Description, text.Quantity, text.UnitPrice, text.Price))
	b.WriteString(line + "\n")
	for _, item := range d.Items {
		b.WriteString(fmt.Sprintf("%-32s %10s %14s %13s\n",
			truncate(item.Description, 32),
			domain.FormatQuantity(item.Quantity),
			domain.FormatMoney(item.BasePrice),
			domain.FormatMoney(item.TotalPrice),
		))
	}
	b.WriteString(line + "\n")

	// Totals
	totals := job.Totals
	b.WriteString(totalLine(text.Subtotal, totals.Subtotal))
	b.WriteString(totalLine(text.TPS, totals.TPS))
	b.WriteString(totalLine(text.TVQ, totals.TVQ))
	b.WriteString(totalLine(text.Total, totals.Total))
	b.WriteString(sep + "\n")

	return trimLines(b.String())
}

func partyBlock(title string, p domain.Party) string {
	lines := []string{title}
	for _, v := range []string{p.Name, p.Address, p.Phone, p.Email} {
		if v != "" {
			lines = append(lines, "  "+v)
		}
	}
	return strings.Join(lines, "\n")
}

func totalLine(label string, amount float64) string {
	return fmt.Sprintf("%57s %14s\n", label, domain.FormatMoney(amount))
}

// truncate shortens s to n runes with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// trimLines drops the padding lipgloss leaves at the end of each line
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
