package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/haulory/haulory/internal/domain"
)

// NewVehicleCommand creates the vehicle command group.
func NewVehicleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage the vehicle fleet",
	}
	cmd.AddCommand(newVehicleImportCommand(rootOpts))
	cmd.AddCommand(newVehicleListCommand(rootOpts))
	cmd.AddCommand(newVehicleRemoveCommand(rootOpts))
	return cmd
}

// vehicleSetYAML is the import file layout: an optional existing set id
// and one unit per slot, in order.
type vehicleSetYAML struct {
	SetID string            `yaml:"setId"`
	Units []vehicleUnitYAML `yaml:"units"`
}

type vehicleUnitYAML struct {
	Kind              string     `yaml:"kind"` // powerUnit | lightTrailer | heavyTrailer
	Rego              string     `yaml:"rego"`
	RegoExpiry        *time.Time `yaml:"regoExpiry"`
	Make              string     `yaml:"make"`
	Model             string     `yaml:"model"`
	Year              int        `yaml:"year"`
	CertificateType   string     `yaml:"certificateType"`
	CertificateExpiry *time.Time `yaml:"certificateExpiry"`
	OdometerKm        *int       `yaml:"odometerKm"`

	// Power unit fields.
	VehicleType    string `yaml:"vehicleType"`
	FuelType       string `yaml:"fuelType"`
	Class4UnitType string `yaml:"class4UnitType"`

	// Trailer fields. Axles is the light trailer configuration; Class the
	// heavy trailer class.
	Configuration string `yaml:"configuration"`
	Axles         string `yaml:"axles"`
	Class         int    `yaml:"class"`
}

func (u vehicleUnitYAML) toAsset() (domain.VehicleAsset, error) {
	asset := domain.VehicleAsset{
		Rego:              u.Rego,
		RegoExpiry:        u.RegoExpiry,
		Make:              u.Make,
		Model:             u.Model,
		Year:              u.Year,
		CertificateType:   domain.CertificateType(u.CertificateType),
		CertificateExpiry: u.CertificateExpiry,
		OdometerKm:        u.OdometerKm,
	}
	switch domain.SpecKind(u.Kind) {
	case domain.SpecPowerUnit:
		asset.Spec = domain.PowerUnitSpec{
			VehicleType:    domain.VehicleType(u.VehicleType),
			FuelType:       domain.FuelType(u.FuelType),
			Class4UnitType: domain.Class4UnitType(u.Class4UnitType),
			Configuration:  domain.Configuration(u.Configuration),
		}
	case domain.SpecLightTrailer:
		asset.Spec = domain.LightTrailerSpec{
			Axles: domain.Configuration(u.Axles),
		}
	case domain.SpecHeavyTrailer:
		asset.Spec = domain.HeavyTrailerSpec{
			Class:         domain.HeavyTrailerClass(u.Class),
			Configuration: domain.Configuration(u.Configuration),
		}
	default:
		return domain.VehicleAsset{}, fmt.Errorf("unit %q: unknown kind %q", u.Rego, u.Kind)
	}
	return asset, nil
}

func newVehicleImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <set.yaml>",
		Short: "Create or resubmit a vehicle set from a YAML file",
		Long: `Create a vehicle set from a YAML file. When the file carries a setId the
set's existing slots are replaced instead of duplicated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return out.Error(fmt.Errorf("read set file: %w", err))
			}
			var file vehicleSetYAML
			if err := yaml.Unmarshal(data, &file); err != nil {
				return out.Error(fmt.Errorf("parse set file %s: %w", args[0], err))
			}

			units := make([]domain.VehicleAsset, 0, len(file.Units))
			for _, u := range file.Units {
				asset, err := u.toAsset()
				if err != nil {
					return out.Error(err)
				}
				units = append(units, asset)
			}

			a, cleanup, err := rootOpts.newApp(rootOpts)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			if file.SetID != "" {
				setID, err := uuid.Parse(file.SetID)
				if err != nil {
					return out.Error(fmt.Errorf("invalid setId %q: %w", file.SetID, err))
				}
				if err := a.ResubmitVehicleSet(cmd.Context(), setID, units); err != nil {
					return out.Error(err)
				}
				return out.Success(map[string]any{"setId": setID, "units": len(units)},
					fmt.Sprintf("Updated set %s (%d units)", setID, len(units)))
			}

			setID, err := a.CreateVehicleSet(cmd.Context(), units)
			if err != nil {
				return out.Error(err)
			}
			return out.Success(map[string]any{"setId": setID, "units": len(units)},
				fmt.Sprintf("Created set %s (%d units)", setID, len(units)))
		},
	}
	return cmd
}

func newVehicleListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the fleet, set by set",
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

			fleet, err := a.ListVehicles(cmd.Context())
			if err != nil {
				return out.Error(err)
			}

			var b strings.Builder
			for _, u := range fleet {
				ruc := ""
				if remaining := u.RUCRemainingKm(); remaining != nil {
					ruc = fmt.Sprintf("  ruc %d km left", *remaining)
				}
				if u.RUCOverdue() {
					ruc = "  RUC OVERDUE"
				}
				fmt.Fprintf(&b, "%s  set %s unit %d  %-8s %s %s%s\n",
					u.ID, u.VehicleSetID, u.UnitNumber, u.Rego, u.Make, u.Model, ruc)
			}
			return out.Success(fleet, strings.TrimRight(b.String(), "\n"))
		},
	}
	return cmd
}

func newVehicleRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <vehicle-id>",
		Short:         "Remove one unit from the fleet",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return out.Error(fmt.Errorf("invalid vehicle id %q: %w", args[0], err))
			}

			a, cleanup, err := rootOpts.newApp(rootOpts)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			if err := a.RemoveVehicle(cmd.Context(), id); err != nil {
				return out.Error(err)
			}
			return out.Success(map[string]any{"removed": id}, fmt.Sprintf("Removed %s", id))
		},
	}
	return cmd
}
