package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/distlint/distlint/internal/config"
)

//go:embed templates/distlint.yaml
var rulesTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new distlint rules file",
		Long: `Initialize creates a new .distlint.yml rules file in the current directory.

The generated file includes:
- The default settings for every check suite
- Commented documentation for each option
- Examples for the opt-in checks (orphan detection, asset scanning)

Examples:
  # Create .distlint.yml in current directory
  distlint init

  # Create rules file at a specific path
  distlint init -o rules.yml

  # Force overwrite existing file
  distlint init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultRulesFile,
		"Output file path for the rules file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing rules file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("rules file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := rulesTemplate.ReadFile("templates/distlint.yaml")
	if err != nil {
		return fmt.Errorf("failed to read rules template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write rules file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	fmt.Printf("Created rules file: %s\n", outputPath)
	fmt.Println("\nEdit this file to tune the check suites, for example:")
	fmt.Println("  - Set site.base_url to enable origin-sensitive checks")
	fmt.Println("  - Opt in to orphan page detection and asset scanning")
	fmt.Println("  - Adjust the trailing-slash and index.html conventions")

	return nil
}
