package main

import (
	"fmt"
	"os"

	"library-records/library"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var (
		dataDir    string
		configPath string
		dbPath     string
	)

	root := &cobra.Command{
		Use:   "export_db",
		Short: "Export the flat-file library stores into a SQLite database",
		Long: `export_db reads the books, students and issues flat files and writes
their rows into books, students and issues tables of a SQLite database.
The flat files remain the source of truth; the database is for ad-hoc
querying.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := library.DefaultConfig(dataDir)
			if configPath != "" {
				loaded, err := library.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				With().Timestamp().Logger()

			mgr := library.NewManager(cfg, log)
			return mgr.ExportSQLite(dbPath)
		},
	}

	root.Flags().StringVar(&dataDir, "data-dir", ".", "directory holding books.csv, students.csv and issues.csv")
	root.Flags().StringVar(&configPath, "config", "", "YAML config naming the store files (overrides --data-dir)")
	root.Flags().StringVar(&dbPath, "db", "library.db", "path of the SQLite database to write")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
