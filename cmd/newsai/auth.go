package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"NewsSummarizer/internal/app"
	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/validation"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Example: `  newsai login --email jane@example.com
  newsai login -e jane@example.com -p secret`,
		RunE: runLoginCmd,
	}

	cmd.Flags().StringP("email", "e", "", "Account email address")
	cmd.Flags().StringP("password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	creds, err := credentialsFromFlags(cmd)
	if err != nil {
		return err
	}

	return withApp(cmd, func(a *app.Application) error {
		identity, err := a.Session.Login(cmd.Context(), creds.Email, creds.Password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", identity.Name, identity.Email)
		return nil
	})
}

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signup",
		Short:   "Create an account and sign in",
		Example: `  newsai signup --email jane@example.com --name "Jane Doe"`,
		RunE:    runSignupCmd,
	}

	cmd.Flags().StringP("email", "e", "", "Account email address")
	cmd.Flags().StringP("password", "p", "", "Account password")
	cmd.Flags().StringP("name", "n", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runSignupCmd(cmd *cobra.Command, _ []string) error {
	creds, err := credentialsFromFlags(cmd)
	if err != nil {
		return err
	}
	if creds.Name == "" {
		return fmt.Errorf("name must not be empty")
	}

	return withApp(cmd, func(a *app.Application) error {
		identity, err := a.Session.Signup(cmd.Context(), creds.Email, creds.Password, creds.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account id is %s\n", identity.Name, identity.ID)
		return nil
	})
}

func credentialsFromFlags(cmd *cobra.Command) (domain.Credentials, error) {
	var creds domain.Credentials
	var err error

	if creds.Email, err = cmd.Flags().GetString("email"); err != nil {
		return creds, err
	}
	if creds.Password, err = cmd.Flags().GetString("password"); err != nil {
		return creds, err
	}
	if cmd.Flags().Lookup("name") != nil {
		if creds.Name, err = cmd.Flags().GetString("name"); err != nil {
			return creds, err
		}
	}

	creds.Email = strings.TrimSpace(creds.Email)
	creds.Name = strings.TrimSpace(creds.Name)

	if err := validation.New().Struct(creds); err != nil {
		return creds, err
	}
	return creds, nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.Application) error {
				if err := a.Session.Logout(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(_ *app.Application, identity *domain.Identity) error {
				favorites := make([]string, len(identity.Preferences.FavoriteCategories))
				for i, c := range identity.Preferences.FavoriteCategories {
					favorites[i] = c.DisplayName()
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s <%s>\n", identity.Name, identity.Email)
				fmt.Fprintf(out, "  id:                  %s\n", identity.ID)
				fmt.Fprintf(out, "  favorite categories: %s\n", strings.Join(favorites, ", "))
				fmt.Fprintf(out, "  summary length:      %s\n", identity.Preferences.SummaryLength)
				fmt.Fprintf(out, "  theme:               %s\n", identity.Preferences.Theme)
				return nil
			})
		},
	}
}
