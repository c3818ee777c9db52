// Package cli implements the haulory command tree. Commands are thin:
// they parse flags, open the application and print results; all business
// rules live in internal/app.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulory/haulory/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DataDir    string
	ConfigPath string

	// newApp builds the application for a command run. Tests swap in a
	// memory-backed constructor.
	newApp func(*RootOptions) (*app.App, func(), error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the haulory CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(buildApp)
}

func newRootCommand(newApp func(*RootOptions) (*app.App, func(), error)) *cobra.Command {
	opts := &RootOptions{newApp: newApp}

	cmd := &cobra.Command{
		Use:   "haulory",
		Short: "Haulory - offline trucking business manager",
		Long:  "Manage drivers, jobs, deliveries and vehicles from a single encrypted local store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (defaults to the per-user config dir)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewDriverCommand(opts))
	cmd.AddCommand(NewJobCommand(opts))
	cmd.AddCommand(NewVehicleCommand(opts))
	cmd.AddCommand(NewReceiptCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
