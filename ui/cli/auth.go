// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
)

func newLoginCmd() *cobra.Command {
	var email string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the credential for seven days",
		Long: `Exchanges email and password for an API credential and stores it in the
configured session backend. Missing values are prompted for; the password
is read without echo when attached to a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)

			if email == "" {
				v, err := p.line(i18n.T("login.email"))
				if err != nil {
					return fmt.Errorf("could not read email: %w", err)
				}
				email = v
			}
			email = strings.TrimSpace(email)

			var password string
			var err error
			if passwordStdin {
				password, err = p.line("")
			} else {
				password, err = p.secret(i18n.T("login.password"))
			}
			if err != nil {
				return fmt.Errorf("could not read password: %w", err)
			}

			if email == "" {
				return errors.New(i18n.T("login.error.email_required"))
			}
			if password == "" {
				return errors.New(i18n.T("login.error.password_required"))
			}

			if err := service.Login(cmd.Context(), model.Credentials{Email: email, Password: password}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.login.success", email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes && !newPrompter(cmd).confirm(i18n.T("cli.logout.confirm", appConfig.API.BaseURL)) {
				fmt.Fprintln(out, i18n.T("cli.aborted"))
				return nil
			}
			if err := service.Logout(cmd.Context()); err != nil {
				return explain(err)
			}
			fmt.Fprintln(out, i18n.T("cli.logout.success"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
