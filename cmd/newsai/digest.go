package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/domain"
)

// NewDigestCmd creates the digest command.
func NewDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Summarize the configured sources into one digest",
		Long: `Digest fetches every source listed under digest.sources in the
configuration, summarizes each one and prints the digest. When Telegram is
configured the digest is sent there too.

With --watch the digest runs on digest.cronExpression until interrupted.`,
		Example: `  newsai digest
  newsai digest --category technology --category science
  newsai digest --watch`,
		RunE: runDigestCmd,
	}

	cmd.Flags().BoolP("watch", "w", false, "Keep running and publish on the configured schedule")
	cmd.Flags().StringSlice("category", nil, "Only include sources in these categories")

	return cmd
}

func runDigestCmd(cmd *cobra.Command, _ []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	rawCategories, err := cmd.Flags().GetStringSlice("category")
	if err != nil {
		return err
	}

	categories := make([]domain.Category, 0, len(rawCategories))
	for _, raw := range rawCategories {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			return err
		}
		categories = append(categories, c)
	}

	return withApp(cmd, func(a *app.Application) error {
		digest, err := a.Digest(cmd.OutOrStdout(), categories)
		if err != nil {
			return err
		}

		if !watch {
			return digest.Run(cmd.Context(), time.Now().In(a.Config().Digest.Location()))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler, driver, err := a.DigestScheduler(digest)
		if err != nil {
			return err
		}
		if err := scheduler.Start(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Next digest at %s (Ctrl+C to stop)\n",
			driver.Next(time.Now()).Format(time.RFC1123))
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return scheduler.Stop(stopCtx)
	})
}
