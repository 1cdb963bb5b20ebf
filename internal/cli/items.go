package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andy/facturier/internal/domain"
)

// parseItem reads a "description;quantity;price" flag value
func parseItem(s string) (domain.ItemDraft, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return domain.ItemDraft{}, fmt.Errorf("item %q: want \"description;quantity;price\"", s)
	}
	d := domain.ItemDraft{
		Description: strings.TrimSpace(parts[0]),
		Quantity:    strings.TrimSpace(parts[1]),
		BasePrice:   strings.TrimSpace(parts[2]),
	}
	if _, err := d.LineItem(); err != nil {
		return domain.ItemDraft{}, fmt.Errorf("item %q: %w", s, err)
	}
	return d, nil
}

func printTotals(out io.Writer, lang domain.Language, t domain.Totals) {
	text := lang.Text()
	fmt.Fprintf(out, "%-16s %14s\n", text.Subtotal, domain.FormatMoney(t.Subtotal))
	fmt.Fprintf(out, "%-16s %14s\n", text.TPS, domain.FormatMoney(t.TPS))
	fmt.Fprintf(out, "%-16s %14s\n", text.TVQ, domain.FormatMoney(t.TVQ))
	fmt.Fprintf(out, "%-16s %14s\n", text.Total, domain.FormatMoney(t.Total))
}
