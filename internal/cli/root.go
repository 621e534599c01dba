// Package cli implements the pageflow command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pageflow",
		Short:         "pageflow reconstructs page-based documents into flowed formats",
		Long:          "pageflow re-derives lines, headings, tables, and reading order\nfrom positioned text and re-emits the document as DOCX or markdown.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newStampCommand())

	return rootCmd
}
