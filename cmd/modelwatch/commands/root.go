package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"modelwatch/lib/configutil"
	"modelwatch/lib/docstore"
	"modelwatch/lib/serviceutil"
	"modelwatch/services/catalog"
	"modelwatch/services/digestmail"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modelwatch",
	Short: "modelwatch scrapes a content catalog into a local store and mails digests.",
}

var configPath *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "modelwatch.json5", "Path to the config file.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	// directory holding the store file, created on demand
	DataDir string `json:"data_dir"`
	// maximum video cards scraped per model page, 0 = all
	ScrapeLimit int                   `json:"scrape_limit"`
	Smtp        digestmail.SmtpConfig `json:"smtp"`
	// models seeded into an empty store on first run
	Models map[string]string `json:"models"`
}

func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](*configPath)
	if os.IsNotExist(err) {
		// running without a config is fine for store-only commands
		err = nil
	}
	if err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg, nil
}

// openCatalog opens the persisted store under the configured data
// directory and seeds the model table from config when it is empty.
func openCatalog(cfg Config) (catalog.Store, error) {
	path := filepath.Join(cfg.DataDir, "db.json")
	err := docstore.EnsureDir(path)
	if err != nil {
		return catalog.Store{}, err
	}
	db, err := docstore.Open(path)
	if err != nil {
		return catalog.Store{}, err
	}

	store := catalog.NewStore(db)
	if store.Models.Len() == 0 {
		for name, link := range cfg.Models {
			_, err := store.AddModel(name, link)
			if err != nil {
				return catalog.Store{}, err
			}
		}
	}
	return store, nil
}

func mustOpenCatalog() (Config, catalog.Store) {
	cfg, err := readConfig()
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	store, err := openCatalog(cfg)
	if err != nil {
		serviceutil.Fatal("failed to open catalog store", err)
	}
	return cfg, store
}
