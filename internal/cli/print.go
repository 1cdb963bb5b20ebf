package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/printer"
	"github.com/andy/facturier/internal/service"
	"github.com/spf13/cobra"
)

var errPrintBlocked = errors.New("print blocked: required fields are missing")

// printFlags maps flags of the print command to form fields
var printFlags = []struct {
	name  string
	field domain.Field
	usage string
}{
	{"number", domain.FieldInvoiceNumber, "invoice number"},
	{"date", domain.FieldInvoiceDate, "invoice date (YYYY-MM-DD, default today)"},
	{"sender-name", domain.FieldSenderName, "sender name"},
	{"sender-address", domain.FieldSenderAddress, "sender address"},
	{"sender-phone", domain.FieldSenderPhone, "sender phone"},
	{"sender-email", domain.FieldSenderEmail, "sender email"},
	{"receiver-name", domain.FieldReceiverName, "receiver name"},
	{"receiver-address", domain.FieldReceiverAddress, "receiver address"},
	{"receiver-phone", domain.FieldReceiverPhone, "receiver phone"},
	{"receiver-email", domain.FieldReceiverEmail, "receiver email"},
	{"tps", domain.FieldTPSCode, "TPS registration number"},
	{"tvq", domain.FieldTVQCode, "TVQ registration number"},
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print an invoice without the screen",
	Long: `Build an invoice from flags and print it through the configured printer.
Saved sender, receiver and tax numbers fill any flag left out, and flags given
are saved the same way edits on the screen are.

The same required-field check as the screen applies: when a field is missing
nothing is printed and the command exits with an error.

Examples:
  facturier print --number F-2026-014 --receiver-name "Client Inc." \
    --item "Conception;2;100" --item "Hébergement;1;15.50"
  facturier print --number F-2026-015 --item "Soutien;3;80" --stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		alerter := &streamAlerter{out: cmd.ErrOrStderr(), lang: appInstance.Language}
		cfg := appInstance.FormConfig(alerter)
		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			cfg.Printer = writerPrinter{out: cmd.OutOrStdout()}
		}
		form := service.NewForm(ctx, cfg)

		for _, f := range printFlags {
			if cmd.Flags().Changed(f.name) {
				v, _ := cmd.Flags().GetString(f.name)
				form.SetField(ctx, f.field, v)
			}
		}

		items, _ := cmd.Flags().GetStringArray("item")
		for _, raw := range items {
			d, err := parseItem(raw)
			if err != nil {
				return err
			}
			form.SetItemDraft(d)
			form.AddItem()
		}

		outcome, err := form.Print(ctx)
		if err != nil {
			return err
		}
		if outcome.Blocked() {
			return errPrintBlocked
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", appInstance.Language.Text().Printed, outcome.Output)
		return nil
	},
}

// streamAlerter writes the blocking message and the missing fields
type streamAlerter struct {
	out  io.Writer
	lang domain.Language
}

func (a *streamAlerter) Alert(message string, missing []domain.Field) {
	fmt.Fprintln(a.out, message)
	if len(missing) == 0 {
		return
	}
	fmt.Fprintln(a.out, a.lang.Text().Missing)
	for _, f := range missing {
		fmt.Fprintf(a.out, "  - %s (--%s)\n", a.lang.Caption(f), flagFor(f))
	}
}

func flagFor(f domain.Field) string {
	for _, pf := range printFlags {
		if pf.field == f {
			return pf.name
		}
	}
	return f.Key()
}

// writerPrinter renders the document to a stream instead of a printer
type writerPrinter struct {
	out io.Writer
}

func (p writerPrinter) Print(ctx context.Context, job domain.PrintJob) (string, error) {
	if _, err := io.WriteString(p.out, printer.Render(job)); err != nil {
		return "", err
	}
	return "stdout", nil
}

func init() {
	for _, f := range printFlags {
		printCmd.Flags().String(f.name, "", f.usage)
	}
	printCmd.Flags().StringArray("item", nil, `line item "description;quantity;price" (repeatable)`)
	printCmd.Flags().Bool("stdout", false, "write the document to stdout instead of the configured printer")
}
