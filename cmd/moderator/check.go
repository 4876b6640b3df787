package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moderatorio/moderator/internal/config"
)

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a configuration file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"OK: %d content type(s), %d author(s), %d editor(s), listening on :%d%s\n",
				len(cfg.ContentTypes), len(cfg.Authors), len(cfg.Editors), cfg.Port, cfg.Endpoint)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "moderator.yaml", "Path to the YAML configuration file")
	return cmd
}
