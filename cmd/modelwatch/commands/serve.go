package commands

import (
	"log/slog"

	"modelwatch/lib/serviceutil"
	"modelwatch/lib/telemetry"
	"modelwatch/services/digestmail"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the stored notification schedules until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store := mustOpenCatalog()

		runner := digestmail.NewRunner(store, digestmail.NewSender(cfg.Smtp))
		err := runner.Register()
		if err != nil {
			serviceutil.Fatal("failed to register schedules", err)
		}

		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)
		runner.Start()
		slog.Info("schedule runner started")

		<-ctx.Done()
		runner.Stop()
		slog.Info("schedule runner stopped")
	},
}
