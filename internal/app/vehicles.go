package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/domain"
)

// CreateVehicleSet persists a new set of one to three units. Every unit
// receives the same fresh set id and its slot position from its index, so
// the batch lands as power unit, trailer 1, trailer 2.
func (a *App) CreateVehicleSet(ctx context.Context, units []domain.VehicleAsset) (uuid.UUID, error) {
	if _, err := a.requireActing(); err != nil {
		return uuid.Nil, err
	}
	if len(units) == 0 || len(units) > 3 {
		return uuid.Nil, validationf("a vehicle set has between 1 and 3 units, got %d", len(units))
	}

	setID := uuid.New()
	year := a.now().Year()
	for i := range units {
		if err := validateUnit(units[i], year); err != nil {
			return uuid.Nil, err
		}
		units[i].VehicleSetID = setID
		units[i].UnitNumber = i + 1
	}

	if err := a.repos.Vehicles.AddRange(ctx, units); err != nil {
		return uuid.Nil, fmt.Errorf("create vehicle set: %w", err)
	}
	a.log.Info("vehicle set created", "set", setID, "units", len(units))
	return setID, nil
}

// ResubmitVehicleSet replaces an existing set's slots with edited units,
// keeping the set id. Units carry their slot from their index.
func (a *App) ResubmitVehicleSet(ctx context.Context, setID uuid.UUID, units []domain.VehicleAsset) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	if setID == uuid.Nil {
		return validationf("set id is required")
	}
	if len(units) == 0 || len(units) > 3 {
		return validationf("a vehicle set has between 1 and 3 units, got %d", len(units))
	}

	year := a.now().Year()
	for i := range units {
		if err := validateUnit(units[i], year); err != nil {
			return err
		}
		units[i].VehicleSetID = setID
		units[i].UnitNumber = i + 1
	}
	if err := a.repos.Vehicles.AddRange(ctx, units); err != nil {
		return fmt.Errorf("resubmit vehicle set: %w", err)
	}
	return nil
}

// ListVehicles returns the whole fleet.
func (a *App) ListVehicles(ctx context.Context) ([]domain.VehicleAsset, error) {
	if _, err := a.requireActing(); err != nil {
		return nil, err
	}
	return a.repos.Vehicles.GetAll(ctx)
}

// RemoveVehicle deletes one unit by id.
func (a *App) RemoveVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	return a.repos.Vehicles.Delete(ctx, id)
}

// UpdateVehicleCompliance sets the certificate and registration expiries
// on one unit.
func (a *App) UpdateVehicleCompliance(ctx context.Context, id uuid.UUID, certType domain.CertificateType, certExpiry, regoExpiry *time.Time) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	return a.mutateVehicle(ctx, id, func(asset *domain.VehicleAsset) error {
		if certType != domain.CertWOF && certType != domain.CertCOF {
			return validationf("certificate type must be wof or cof")
		}
		asset.CertificateType = certType
		asset.CertificateExpiry = certExpiry
		asset.RegoExpiry = regoExpiry
		return nil
	})
}

// UpdateVehicleOdometer records a new odometer reading. Readings never go
// backwards.
func (a *App) UpdateVehicleOdometer(ctx context.Context, id uuid.UUID, km int) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	return a.mutateVehicle(ctx, id, func(asset *domain.VehicleAsset) error {
		if km < 0 {
			return validationf("odometer cannot be negative")
		}
		if asset.OdometerKm != nil && km < *asset.OdometerKm {
			return validationf("odometer cannot go backwards (current %d km)", *asset.OdometerKm)
		}
		asset.OdometerKm = &km
		return nil
	})
}

// RecordRUCPurchase records a road-user-charge licence purchase on a unit
// that is subject to RUC. The new licence runs from the purchase odometer
// for the purchased distance.
func (a *App) RecordRUCPurchase(ctx context.Context, id uuid.UUID, odometerAtPurchaseKm, distancePurchasedKm int) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	if distancePurchasedKm <= 0 {
		return validationf("purchased distance must be positive")
	}
	return a.mutateVehicle(ctx, id, func(asset *domain.VehicleAsset) error {
		if asset.Spec == nil || !asset.Spec.RUCApplicable() {
			return validationf("unit %s is not subject to road user charges", asset.Rego)
		}
		ruc := &domain.RoadUserCharge{
			OdometerAtPurchaseKm: odometerAtPurchaseKm,
			DistancePurchasedKm:  distancePurchasedKm,
			PurchasedAt:          a.now(),
			LicenceStartKm:       odometerAtPurchaseKm,
			LicenceEndKm:         odometerAtPurchaseKm + distancePurchasedKm,
			NextDueOdometerKm:    odometerAtPurchaseKm + distancePurchasedKm,
		}
		switch spec := asset.Spec.(type) {
		case domain.PowerUnitSpec:
			spec.Ruc = ruc
			asset.Spec = spec
		case domain.HeavyTrailerSpec:
			spec.Ruc = ruc
			asset.Spec = spec
		default:
			return validationf("unit %s cannot carry a RUC licence", asset.Rego)
		}
		return nil
	})
}

// mutateVehicle loads a unit by id, applies fn and saves it back through
// the id-only update path.
func (a *App) mutateVehicle(ctx context.Context, id uuid.UUID, fn func(*domain.VehicleAsset) error) error {
	asset, err := a.repos.Vehicles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load vehicle: %w", err)
	}
	if asset == nil {
		return notFoundf("vehicle %s not found", id)
	}
	if err := fn(asset); err != nil {
		return err
	}
	if err := a.repos.Vehicles.Update(ctx, *asset); err != nil {
		return fmt.Errorf("save vehicle: %w", err)
	}
	return nil
}

// validateUnit is the shared entry validation for set creation.
func validateUnit(u domain.VehicleAsset, currentYear int) error {
	if strings.TrimSpace(u.Rego) == "" {
		return validationf("every unit needs a registration plate")
	}
	if u.Year != 0 && (u.Year < 1950 || u.Year > currentYear+1) {
		return validationf("unit %s: implausible year %d", strings.TrimSpace(u.Rego), u.Year)
	}
	if u.Spec == nil {
		return validationf("unit %s: missing vehicle spec", strings.TrimSpace(u.Rego))
	}
	return nil
}
