// Package cmd implements the CLI commands for telegraph2pdf using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "telegraph2pdf",
	Short: "telegraph2pdf — save Telegraph image articles as PDF",
	Long: `telegraph2pdf fetches Telegraph articles, records their metadata as JSON,
downloads every embedded image into a local cache and merges the images
into one PDF per article.

Usage:
  telegraph2pdf convert <slug-or-url>... [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
