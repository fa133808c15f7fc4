// Package main provides the entry point for the lpanalyzer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for lpanalyzer.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lpanalyzer",
		Short: "LLM-based design critique for landing pages",
		Long: `lpanalyzer analyzes landing-page screenshots with a multimodal LLM
(Gemini or OpenAI) and produces a validated design critique: visual issues
with priority and category, plus improvement suggestions.

Provider credentials are read from GEMINI_API_KEY or OPENAI_API_KEY.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewGenresCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
