// moderator receives content management webhooks and emails the team that
// should act next on an entry.
//
// Usage:
//
//	moderator serve --config /etc/moderator/config.yaml
//	moderator check --config /etc/moderator/config.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "moderator",
		Short: "Relay content workflow webhooks as email notifications",
		Long: `moderator listens for entry-change webhooks from a content management
platform, inspects the configured workflow fields, and notifies authors or
editors by email when an entry needs their attention.`,
		Version: version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
