package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/labelpick/internal/database"
	"github.com/thenoetrevino/labelpick/internal/devserver"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		dbPath   string
		seedPath string
		persist  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local label endpoint for development",
		Long: `Run a local label endpoint backed by SQLite. GET /labels/ returns the
catalog and hands out a csrftoken cookie; POST /labels/ replaces a ticket's labels.

Examples:
  # In-memory store with built-in sample labels
  labelpick serve --addr=127.0.0.1:8000

  # Persistent store seeded from a YAML file
  labelpick serve --db=./labels.db --seed=./seed.yaml

  # Persistent store under ~/.labelpick
  labelpick serve --persist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				db  *sql.DB
				err error
			)
			if persist {
				db, err = database.InitDB(ctx)
			} else {
				db, err = database.Open(ctx, dbPath)
			}
			if err != nil {
				return err
			}
			defer db.Close()

			seed := []byte(database.DefaultSeed)
			if seedPath != "" {
				if seed, err = os.ReadFile(seedPath); err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
			}
			labels, err := database.GetAllLabels(ctx, db)
			if err != nil {
				return err
			}
			if len(labels) == 0 {
				if err := database.ApplySeed(ctx, db, seed); err != nil {
					return err
				}
			}

			srv := devserver.New(db, addr)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving labels at http://%s%s\n", addr, devserver.LabelsPath)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				slog.Info("label dev server shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", ":memory:", "SQLite database path")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML seed file used when the database is empty")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store labels in ~/.labelpick/labels.db (overrides --db)")
	return cmd
}
