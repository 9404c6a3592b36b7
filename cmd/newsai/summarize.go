package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/domain"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize an article given by URL, text or file",
		Long: `Summarize builds an extractive summary of an article and adds it to the
history. Exactly one of --url, --text or --file must be given; "--file -"
reads the article from standard input.`,
		Example: `  newsai summarize --url https://example.com/story --category world
  newsai summarize --text "..." --title "My article" --category science
  cat article.txt | newsai summarize --file - --category business`,
		RunE: runSummarizeCmd,
	}

	cmd.Flags().StringP("url", "u", "", "Article URL")
	cmd.Flags().StringP("text", "t", "", "Article text")
	cmd.Flags().StringP("file", "f", "", "Read article text from a file (- for stdin)")
	cmd.Flags().String("title", "", "Article title")
	cmd.Flags().StringP("category", "C", string(domain.CategoryTechnology), "Article category")

	cmd.MarkFlagsMutuallyExclusive("url", "text", "file")
	cmd.MarkFlagsOneRequired("url", "text", "file")

	return cmd
}

func runSummarizeCmd(cmd *cobra.Command, _ []string) error {
	sub, err := submissionFromFlags(cmd)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app.Application, _ *domain.Identity) error {
		summary, err := a.Workspace.Submit(cmd.Context(), sub)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	})
}

func submissionFromFlags(cmd *cobra.Command) (domain.Submission, error) {
	var sub domain.Submission

	rawCategory, err := cmd.Flags().GetString("category")
	if err != nil {
		return sub, err
	}
	if sub.Category, err = domain.ParseCategory(rawCategory); err != nil {
		return sub, err
	}
	if sub.URL, err = cmd.Flags().GetString("url"); err != nil {
		return sub, err
	}
	if sub.Title, err = cmd.Flags().GetString("title"); err != nil {
		return sub, err
	}
	if sub.Content, err = cmd.Flags().GetString("text"); err != nil {
		return sub, err
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return sub, err
	}
	if path != "" {
		if sub.Content, err = readArticle(cmd, path); err != nil {
			return sub, err
		}
	}

	return sub, nil
}

func readArticle(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // reading the user's own file is the point
	if err != nil {
		return "", fmt.Errorf("read article file: %w", err)
	}
	return string(raw), nil
}
