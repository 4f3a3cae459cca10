// Package cmd wires the wrapper's collaborators and exposes the single
// cobra entry point. Flag parsing is disabled so the raw token stream
// reaches the router untouched; every flag belongs to docker-compose.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/composetrust/internal/docker"
	"github.com/felixgeelhaar/composetrust/internal/hooks"
	"github.com/felixgeelhaar/composetrust/internal/registry"
	"github.com/felixgeelhaar/composetrust/internal/router"
)

var rootCmd = &cobra.Command{
	Use:   "composetrust [docker-compose arguments]",
	Short: "Content-trust wrapper for docker-compose",
	Long: `composetrust wraps docker-compose with image-signing verification.
The build, push and pull actions are intercepted: parent and service images
are moved between the trusted remote registry and the local staging registry
at ` + registry.LocalAddress + ` with content trust enforced, so everything
the wrapped tool consumes locally has passed signature verification. All
other actions are delegated to docker-compose unchanged.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

func run(args []string) error {
	client := docker.NewCLI()

	// The resolver captures the caller's upstream registry prefix before
	// the router overrides the variable for delegation.
	resolver := registry.NewResolver()

	table := hooks.New(client, resolver).Table()
	return router.New(client, table).Run(args)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
