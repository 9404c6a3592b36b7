package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/config"
	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/logging"
	"NewsSummarizer/internal/session"
)

// NewRootCmd creates the root command for newsai.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsai",
		Short: "Summarize news articles from the command line",
		Long: `newsai turns news articles into short extractive summaries.

Sign in, submit an article by URL or as text, and newsai keeps the ten most
recent summaries so they can be searched, shown again or exported.
A daily digest of configured sources can be printed or sent to Telegram.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewCategoriesCmd())
	cmd.AddCommand(NewDigestCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			err = fmt.Errorf("%w (run \"newsai login\" first)", err)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp loads configuration from the persistent flags and builds the
// application. Logs go to the command's error stream.
func openApp(cmd *cobra.Command) (*app.Application, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	return app.New(cmd.Context(), cfg, logger)
}

// withApp opens the application, runs fn and closes it.
func withApp(cmd *cobra.Command, fn func(*app.Application) error) (err error) {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}

// withSession is withApp for commands that need a signed-in user.
func withSession(cmd *cobra.Command, fn func(*app.Application, *domain.Identity) error) error {
	return withApp(cmd, func(a *app.Application) error {
		identity, err := a.Session.Require()
		if err != nil {
			return err
		}
		return fn(a, identity)
	})
}
