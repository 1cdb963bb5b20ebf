package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andy/facturier/internal/domain"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage saved sender, receiver and tax numbers",
	Long: `The screen saves the sender, the receiver and both tax numbers as you type
and fills them in on the next run. These commands show, edit or clear them.

Examples:
  facturier prefs show
  facturier prefs set-sender --name "Atelier Boréal" --phone 418-555-0100
  facturier prefs set-tax-codes --tps 123456789RT0001 --tvq 1234567890TQ0001
  facturier prefs clear`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := appInstance.NewForm(cmd.Context(), nil).Draft()
		lang := appInstance.Language
		text := lang.Text()
		out := cmd.OutOrStdout()

		printParty(out, lang, text.From, d.Sender, domain.FieldSenderName)
		fmt.Fprintln(out)
		printParty(out, lang, text.BilledTo, d.Receiver, domain.FieldReceiverName)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-14s %s\n", lang.Caption(domain.FieldTPSCode)+":", d.TPSCode)
		fmt.Fprintf(out, "%-14s %s\n", lang.Caption(domain.FieldTVQCode)+":", d.TVQCode)
		return nil
	},
}

// printParty lists the four party fields, starting at first
func printParty(out io.Writer, lang domain.Language, title string, p domain.Party, first domain.Field) {
	fmt.Fprintln(out, title)
	values := []string{p.Name, p.Address, p.Phone, p.Email}
	for i, v := range values {
		fmt.Fprintf(out, "  %-12s %s\n", lang.Caption(first+domain.Field(i))+":", v)
	}
}

// partyFlags are shared by set-sender and set-receiver, offset from the
// party's name field
var partyFlags = []string{"name", "address", "phone", "email"}

func setPartyRunE(first domain.Field) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		form := appInstance.NewForm(ctx, nil)

		changed := 0
		for i, name := range partyFlags {
			if !cmd.Flags().Changed(name) {
				continue
			}
			v, _ := cmd.Flags().GetString(name)
			form.SetField(ctx, first+domain.Field(i), v)
			changed++
		}
		if changed == 0 {
			return fmt.Errorf("nothing to set: pass at least one of --%s", strings.Join(partyFlags, ", --"))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d field(s)\n", changed)
		return nil
	}
}

var prefsSetSenderCmd = &cobra.Command{
	Use:   "set-sender",
	Short: "Save sender fields",
	RunE:  setPartyRunE(domain.FieldSenderName),
}

var prefsSetReceiverCmd = &cobra.Command{
	Use:   "set-receiver",
	Short: "Save receiver fields",
	RunE:  setPartyRunE(domain.FieldReceiverName),
}

var prefsSetTaxCodesCmd = &cobra.Command{
	Use:   "set-tax-codes",
	Short: "Save TPS and TVQ registration numbers",
	Long: `Save TPS and TVQ registration numbers. An empty value is ignored and
keeps the number saved before, as on the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tps, _ := cmd.Flags().GetString("tps")
		tvq, _ := cmd.Flags().GetString("tvq")
		if tps == "" && tvq == "" {
			return fmt.Errorf("nothing to set: pass --tps and/or --tvq")
		}

		if err := appInstance.Preferences.SaveTaxCode(ctx, domain.FieldTPSCode, tps); err != nil {
			return fmt.Errorf("failed to save TPS number: %w", err)
		}
		if err := appInstance.Preferences.SaveTaxCode(ctx, domain.FieldTVQCode, tvq); err != nil {
			return fmt.Errorf("failed to save TVQ number: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Tax numbers saved")
		return nil
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved sender, receiver and tax numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), "This will forget the saved sender, receiver and tax numbers. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := appInstance.Preferences.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear saved fields: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Saved fields cleared.")
		return nil
	},
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes" || input == "o" || input == "oui"
}

func init() {
	for _, c := range []*cobra.Command{prefsSetSenderCmd, prefsSetReceiverCmd} {
		for _, name := range partyFlags {
			c.Flags().String(name, "", name)
		}
	}
	prefsSetTaxCodesCmd.Flags().String("tps", "", "TPS registration number")
	prefsSetTaxCodesCmd.Flags().String("tvq", "", "TVQ registration number")
	prefsClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetSenderCmd)
	prefsCmd.AddCommand(prefsSetReceiverCmd)
	prefsCmd.AddCommand(prefsSetTaxCodesCmd)
	prefsCmd.AddCommand(prefsClearCmd)
}
