package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// genreFocus summarizes what each genre's audit concentrates on.
var genreFocus = map[model.Genre]string{
	model.GenreSaaSTool:    "Value proposition clarity, trust signals, trial/demo CTA prominence",
	model.GenreD2CProduct:  "Product imagery quality, purchase CTA flow, price and offer visibility",
	model.GenreEducation:   "Curriculum readability, credibility cues, enrollment path clarity",
	model.GenreRecruiting:  "Company culture imagery, role clarity, application CTA accessibility",
	model.GenreAppDownload: "Store badge placement, app screenshot presentation, install friction",
}

// NewGenresCmd creates the genres command.
func NewGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List supported landing-page genres",
		Long: `List the landing-page genres the analyzer supports and what each
genre's audit focuses on. Pass a genre to the analyze command with --genre.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported genres:")
			fmt.Fprintln(out)
			for _, genre := range model.AllGenres() {
				fmt.Fprintf(out, "  %-13s %s\n", genre, genre.DisplayName())
				fmt.Fprintf(out, "                Focus: %s\n", genreFocus[genre])
			}
		},
	}
}
