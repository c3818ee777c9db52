package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewDriverCommand creates the driver command group.
func NewDriverCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Manage driver profiles",
	}
	cmd.AddCommand(newDriverAddCommand(rootOpts))
	cmd.AddCommand(newDriverListCommand(rootOpts))
	return cmd
}

// DriverAddOptions holds flags for driver add.
type DriverAddOptions struct {
	*RootOptions
	FirstName string
	LastName  string
	Email     string
}

func newDriverAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DriverAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Add a driver profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			a, cleanup, err := opts.newApp(opts.RootOptions)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			driver, err := a.CreateDriver(cmd.Context(), opts.FirstName, opts.LastName, opts.Email)
			if err != nil {
				return out.Error(err)
			}
			return out.Success(driver, fmt.Sprintf("Added driver %s (%s)", driver.DisplayName(), driver.ID))
		},
	}

	cmd.Flags().StringVar(&opts.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")

	return cmd
}

func newDriverListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List driver profiles",
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

			drivers, err := a.ListDrivers(cmd.Context())
			if err != nil {
				return out.Error(err)
			}

			var b strings.Builder
			for _, d := range drivers {
				role := "driver"
				if d.IsMainProfile() {
					role = "owner"
				}
				fmt.Fprintf(&b, "%s  %-24s %-8s %s\n", d.ID, d.DisplayName(), role, d.Email)
			}
			return out.Success(drivers, strings.TrimRight(b.String(), "\n"))
		},
	}
	return cmd
}
