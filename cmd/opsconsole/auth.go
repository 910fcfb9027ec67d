package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Long: `Sign in with your email and password. The password is read from --password, the
OPSCONSOLE_PASSWORD environment variable or the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("OPSCONSOLE_PASSWORD")
			}
			if password == "" {
				printf(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("could not read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			return c.run(cmd, func(ctx context.Context) error {
				res, err := c.client.Login(ctx, email, password)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", res.User.Email, res.User.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				if err := c.client.Logout(); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Signed out\n")
				return nil
			})
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				if _, err := c.requireSession(); err != nil {
					return err
				}
				user, err := c.client.Profile(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				printf(w, "email:    %s\n", user.Email)
				if user.Username != "" {
					printf(w, "username: %s\n", user.Username)
				}
				printf(w, "role:     %s\n", user.Role)
				return nil
			})
		},
	}
}
