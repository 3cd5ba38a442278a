package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/labelpick/internal/config"
	"github.com/thenoetrevino/labelpick/internal/logging"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "labelpick",
		Short: "labelpick - attach labels to a ticket from the terminal",
		Long: `labelpick fetches the label catalog from a label endpoint, lets you pick
labels for one ticket, and saves the selection once you stop editing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Init(); err != nil {
				// logging is best effort; the widget still works without it
				fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
			}
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			*cfg = *loaded
			return nil
		},
	}

	cfg = config.Default()

	mount := mountCmd(cfg)
	root.RunE = mount.RunE
	root.Flags().AddFlagSet(mount.Flags())

	root.AddCommand(mount)
	root.AddCommand(serveCmd())
	root.AddCommand(configCmd(cfg))

	return root
}

// Execute runs the root command, canceling on SIGINT/SIGTERM
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return NewRootCmd().ExecuteContext(ctx)
}
