package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulory/haulory/internal/app"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "register",
		Short:         "Create the account and its main driver profile",
		Example:       "  haulory register --first Jane --last Doe --email jane@example.com --password s3cret",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	a, cleanup, err := opts.newApp(opts.RootOptions)
	if err != nil {
		return out.Error(err)
	}
	defer cleanup()

	account, err := a.Register(cmd.Context(), app.RegisterInput{
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		Email:     opts.Email,
		Password:  opts.Password,
	})
	if err != nil {
		return out.Error(err)
	}
	return out.Success(account, fmt.Sprintf("Registered %s <%s>", account.DisplayName(), account.Email))
}
