package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/export"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a summary to a file (latest by default)",
		Long: `Export writes a summary to <slug>_summary.txt, or <slug>_summary.md with
--format markdown, where <slug> is the lower-cased title with every
character other than a-z and 0-9 replaced by an underscore.`,
		Example: `  newsai export
  newsai export 0192f0c4-... --format markdown --output ~/Documents`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().String("format", string(export.FormatText), "Output format (text or markdown)")
	cmd.Flags().StringP("output", "o", ".", "Directory to write the file into")

	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	rawFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app.Application, _ *domain.Identity) error {
		summary, err := pickSummary(a, args)
		if err != nil {
			return err
		}

		path, err := writeExport(dir, format, summary)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	})
}

func writeExport(dir string, format export.Format, summary domain.Summary) (path string, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path = filepath.Join(dir, export.FilenameFor(format, summary.Article.Title))
	f, err := os.Create(path) //nolint:gosec // path is built from a sanitized slug
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	if err := export.Write(f, format, summary); err != nil {
		return "", err
	}
	return path, nil
}
