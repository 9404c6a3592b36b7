package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/domain"
)

// NewCategoriesCmd creates the categories command.
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the article categories",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, c := range domain.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-13s %s\n", c.Icon(), c.DisplayName(), c)
			}
		},
	}
}
