package cmd

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thenoetrevino/labelpick/internal/config"
	"github.com/thenoetrevino/labelpick/internal/mount"
)

type mountFlags struct {
	url         string
	labels      string
	ticket      int
	csrfToken   string
	debounceMS  int
	keepMissing bool
	print       bool
}

func addMountFlags(fs *pflag.FlagSet, f *mountFlags) {
	fs.StringVar(&f.url, "url", "", "Label endpoint URL (default from config)")
	fs.StringVar(&f.labels, "labels", "", "Comma-separated ids of the labels already on the ticket")
	fs.IntVar(&f.ticket, "ticket", 0, "Ticket ID (required)")
	fs.StringVar(&f.csrfToken, "csrf-token", "", "CSRF token to send when the server does not set the cookie")
	fs.IntVar(&f.debounceMS, "debounce", 0, "Quiet period in milliseconds before saving (default from config)")
	fs.BoolVar(&f.keepMissing, "keep-missing", false, "Keep initial label ids that are not in the catalog")
	fs.BoolVar(&f.print, "print", false, "Print the final label ids to stdout on exit")
}

// applyMountFlags lets explicitly set flags win over the config file
func applyMountFlags(fs *pflag.FlagSet, f *mountFlags, cfg *config.Config) {
	if fs.Changed("debounce") && f.debounceMS > 0 {
		cfg.DebounceMS = f.debounceMS
	}
	if fs.Changed("keep-missing") {
		cfg.KeepMissing = f.keepMissing
	}
}

func mountCmd(cfg *config.Config) *cobra.Command {
	f := &mountFlags{}

	cmd := &cobra.Command{
		Use:   "mount",
		Short: "Open the label picker for a ticket",
		Long: `Open the label picker for a ticket. Changes are saved to the label
endpoint after the quiet period; closing the picker drops unsaved edits.

Examples:
  # Edit ticket 7 which currently has labels 2 and 4
  labelpick --url=http://localhost:8000/labels/ --ticket=7 --labels=2,4

  # Use a local dev server
  labelpick serve &
  labelpick mount --url=http://127.0.0.1:8000/labels/ --ticket=1 --labels=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ticket") {
				return fmt.Errorf("--ticket is required")
			}
			applyMountFlags(cmd.Flags(), f, cfg)

			ns := mount.NewNamespace(cfg, f.csrfToken)
			widget, err := ns.Labels(cmd.Context(), mount.Params{
				URL: f.url,
				Element: mount.Attributes{
					mount.AttrLabels: f.labels,
					mount.AttrTicket: strconv.Itoa(f.ticket),
				},
			})
			if err != nil {
				return err
			}
			defer widget.Close()

			p := tea.NewProgram(widget, tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running label picker: %w", err)
			}

			if f.print {
				ids, err := widget.Store().SelectedIDs()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), joinIDs(ids))
			}
			return nil
		},
	}

	addMountFlags(cmd.Flags(), f)
	return cmd
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
