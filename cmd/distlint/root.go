// Package main provides the entry point for the distlint CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for distlint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distlint",
		Short: "Static auditor for static-site build output",
		Long: `distlint audits the build output of a static site generator.

It walks the dist directory, parses every HTML page, and checks the
internal link graph, URL normalization, canonical links, sitemap
consistency, HTML hygiene, and accessibility. Everything is read from
disk; no network requests are made.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Audit findings exit with code 1;
// fatal configuration problems exit with code 2.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var cfgErr *configError
		if errors.As(err, &cfgErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
