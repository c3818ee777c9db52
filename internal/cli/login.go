package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "login <email>",
		Short:         "Log in and start a session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "password")

	return cmd
}

func runLogin(opts *LoginOptions, email string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	a, cleanup, err := opts.newApp(opts.RootOptions)
	if err != nil {
		return out.Error(err)
	}
	defer cleanup()

	account, err := a.Login(cmd.Context(), email, opts.Password)
	if err != nil {
		return out.Error(err)
	}
	return out.Success(account, fmt.Sprintf("Logged in as %s", account.DisplayName()))
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "logout",
		Short:         "End the current session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			a, cleanup, err := rootOpts.newApp(rootOpts)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			a.Logout()
			return out.Success(map[string]string{"status": "logged out"}, "Logged out")
		},
	}
	return cmd
}
