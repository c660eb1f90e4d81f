package commands

import (
	"log/slog"
	"time"

	"modelwatch/lib/scrapers/jable"
	"modelwatch/lib/serviceutil"
	"modelwatch/services/catalog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrapes every known model and merges the results into the store.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store := mustOpenCatalog()

		client, err := jable.NewClient(jable.ClientOptions{Limit: cfg.ScrapeLimit})
		if err != nil {
			serviceutil.Fatal("failed to initialize scrape client", err)
		}
		in := catalog.NewIngestor(store, client)

		t1 := time.Now()
		err = in.Run(cmd.Context())
		if err != nil {
			slog.Warn("ingestion pass finished with failures", "err", err)
		}
		slog.Info("fetch done", "seconds", time.Since(t1).Seconds())
	},
}
