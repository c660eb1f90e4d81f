package commands

import (
	"fmt"
	"log/slog"
	"os"

	"modelwatch/lib/scrapers/jable"
	"modelwatch/lib/serviceutil"
	"modelwatch/services/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listModelsCmd)
	rootCmd.AddCommand(addModelCmd)
	rootCmd.AddCommand(removeModelCmd)
}

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "Prints every tracked model.",
	Run: func(cmd *cobra.Command, args []string) {
		_, store := mustOpenCatalog()

		models, err := store.Models.All()
		if err != nil {
			serviceutil.Fatal("failed to list models", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Link", "Videos"})
		for _, m := range models {
			videos, err := store.Videos.Search(catalog.VideosOf(m.Name))
			if err != nil {
				serviceutil.Fatal("failed to count videos", err)
			}
			t.AppendRow(table.Row{m.Name, m.Link, len(videos)})
		}
		t.Render()
	},
}

var addModelCmd = &cobra.Command{
	Use:   "add-model <name> <url>",
	Short: "Starts tracking a model and fetches its page immediately.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name, link := args[0], args[1]
		cfg, store := mustOpenCatalog()

		added, err := store.AddModel(name, link)
		if err != nil {
			serviceutil.Fatal("failed to add model", err)
		}
		if !added {
			fmt.Printf("model %s is already tracked\n", name)
			return
		}

		client, err := jable.NewClient(jable.ClientOptions{Limit: cfg.ScrapeLimit})
		if err != nil {
			serviceutil.Fatal("failed to initialize scrape client", err)
		}

		// a model that cannot be scraped at all is not worth keeping;
		// roll the add back so the next fetch pass isn't poisoned
		in := catalog.NewIngestor(store, client)
		err = in.Run(cmd.Context())
		if err != nil {
			_, removeErr := store.RemoveModel(name)
			if removeErr != nil {
				serviceutil.Fatal("failed to roll back model add", removeErr)
			}
			serviceutil.Fatal("failed to fetch new model, add rolled back", err)
		}
		slog.Info("model added", "model", name)
	},
}

var removeModelCmd = &cobra.Command{
	Use:   "remove-model <name>",
	Short: "Stops tracking a model and drops its videos.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		_, store := mustOpenCatalog()

		removed, err := store.RemoveModel(name)
		if err != nil {
			serviceutil.Fatal("failed to remove model", err)
		}
		if !removed {
			fmt.Printf("model %s was not tracked\n", name)
			return
		}

		active, err := store.ActiveModels()
		if err != nil {
			serviceutil.Fatal("failed to read active models", err)
		}
		err = catalog.NewIngestor(store, nil).Cleanup(active)
		if err != nil {
			serviceutil.Fatal("failed to clean up videos", err)
		}
		slog.Info("model removed", "model", name)
	},
}
