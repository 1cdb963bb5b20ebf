package cli

import (
	"context"

	"github.com/andy/facturier/internal/app"
	"github.com/andy/facturier/internal/config"
	"github.com/spf13/cobra"
)

// skipAppAnnotation marks commands that run without the database
const skipAppAnnotation = "facturier/skip-app"

var (
	appInstance *app.App

	configPath string
	noSave     bool
)

var rootCmd = &cobra.Command{
	Use:   "facturier",
	Short: "Draft and print invoices with TPS and TVQ from the terminal",
	Long: `Facturier drafts an invoice: sender, receiver, tax numbers and line items,
with TPS (5%) and TVQ (9.975%) computed for you. Sender, receiver and tax
numbers are remembered between runs in an encrypted local database.

By default, running facturier without arguments launches the invoice screen.
Use subcommands for headless printing and managing saved fields.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	RunE:              launchTUI,
}

// Execute runs the root command and closes the App afterwards
func Execute(ctx context.Context) error {
	defer func() {
		if appInstance != nil {
			appInstance.Close()
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// initApp assembles the App for commands that need it. Opening the
// database may prompt for a password, so help and totals skip it.
func initApp(cmd *cobra.Command, args []string) error {
	if appInstance != nil || cmd.Annotations[skipAppAnnotation] != "" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a, err := app.NewWithConfig(cmd.Context(), cfg, app.Options{Ephemeral: noSave})
	if err != nil {
		return err
	}
	appInstance = a
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&noSave, "no-save", false, "keep saved fields in memory only for this run")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(configCmd)
}
