package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/labelpick/internal/config"
	"gopkg.in/yaml.v3"
)

func configCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var url string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				cfg.URL = url
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config written")
			return nil
		},
	}
	initCmd.Flags().StringVar(&url, "url", "", "Label endpoint URL to store")
	cmd.AddCommand(initCmd)

	return cmd
}
