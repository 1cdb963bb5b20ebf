package cli

import (
	"github.com/andy/facturier/internal/domain"
	"github.com/spf13/cobra"
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Compute subtotal, TPS, TVQ and total for a list of items",
	Long: `Compute the totals of an invoice without opening the database.

Example:
  facturier totals --item "Conception;2;100" --item "Hébergement;1;15.50"`,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("item")
		lang, _ := cmd.Flags().GetString("lang")

		items := make([]domain.LineItem, 0, len(raw))
		for _, r := range raw {
			d, err := parseItem(r)
			if err != nil {
				return err
			}
			item, _ := d.LineItem()
			items = append(items, item)
		}

		printTotals(cmd.OutOrStdout(), domain.ParseLanguage(lang), domain.CalculateTotals(items))
		return nil
	},
}

func init() {
	totalsCmd.Flags().StringArray("item", nil, `line item "description;quantity;price" (repeatable)`)
	totalsCmd.Flags().String("lang", "fr", "language of the labels (fr, en)")
}
