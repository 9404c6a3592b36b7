package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/domain"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent summaries, newest first",
		Example: `  newsai history
  newsai history --search climate`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("search", "s", "", "Only show summaries whose title or text contains this term")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	term, err := cmd.Flags().GetString("search")
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app.Application, _ *domain.Identity) error {
		items := a.Workspace.Search(term)
		out := cmd.OutOrStdout()

		if len(items) == 0 {
			if term != "" {
				fmt.Fprintf(out, "No summaries match %q\n", term)
			} else {
				fmt.Fprintln(out, "No summaries yet. Run \"newsai summarize\" to create one.")
			}
			return nil
		}

		for _, s := range items {
			printHistoryLine(out, s)
		}
		return nil
	})
}

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a summary from the history (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(a *app.Application, _ *domain.Identity) error {
				summary, err := pickSummary(a, args)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

func pickSummary(a *app.Application, args []string) (domain.Summary, error) {
	if len(args) == 0 {
		return a.Workspace.Latest()
	}
	return a.Workspace.Find(args[0])
}
