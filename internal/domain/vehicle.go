package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SpecKind tags the vehicle spec variant on the wire.
type SpecKind string

const (
	SpecPowerUnit    SpecKind = "powerUnit"
	SpecLightTrailer SpecKind = "lightTrailer"
	SpecHeavyTrailer SpecKind = "heavyTrailer"
)

// VehicleType classifies a powered vehicle.
type VehicleType string

const (
	VehicleCar         VehicleType = "car"
	VehicleUte         VehicleType = "ute"
	VehicleTruckClass2 VehicleType = "truckClass2"
	VehicleTruckClass4 VehicleType = "truckClass4"
)

// FuelType is the power unit's fuel.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// Class4UnitType is the class-4 power unit subtype.
type Class4UnitType string

const (
	Class4Truck   Class4UnitType = "truck"
	Class4Tractor Class4UnitType = "tractor"
)

// Configuration is the body/axle configuration of a unit.
type Configuration string

const (
	ConfigSingleAxle   Configuration = "singleAxle"
	ConfigTandemAxle   Configuration = "tandemAxle"
	ConfigRigid        Configuration = "rigid"
	ConfigRigidCold    Configuration = "rigidRefrigerated"
	ConfigTractorUnit  Configuration = "tractorUnit"
	ConfigCurtainsider Configuration = "curtainsider"
	ConfigFlatDeck     Configuration = "flatDeck"
	ConfigSkeleton     Configuration = "skeleton"
	ConfigRefrigerated Configuration = "refrigerated"
	ConfigTanker       Configuration = "tanker"
)

// HeavyTrailerClass is the compliance class of a heavy trailer.
type HeavyTrailerClass int

const (
	TrailerClass3 HeavyTrailerClass = 3
	TrailerClass5 HeavyTrailerClass = 5
)

// CertificateType is the compliance certificate a unit carries.
type CertificateType string

const (
	CertWOF CertificateType = "wof"
	CertCOF CertificateType = "cof"
)

// RoadUserCharge records one RUC licence purchase for a unit. RUC is
// per-asset: each unit in a set carries its own record.
type RoadUserCharge struct {
	OdometerAtPurchaseKm int       `json:"odometerAtPurchaseKm"`
	DistancePurchasedKm  int       `json:"distancePurchasedKm"`
	PurchasedAt          time.Time `json:"purchasedAt"`
	NextDueOdometerKm    int       `json:"nextDueOdometerKm"`
	LicenceStartKm       int       `json:"licenceStartKm"`
	LicenceEndKm         int       `json:"licenceEndKm"`
}

// VehicleSpec is the closed variant over vehicle kinds. Each variant
// carries only the fields applicable to that kind, replacing scattered
// nullable columns with an exhaustive tagged union.
type VehicleSpec interface {
	Kind() SpecKind

	// RUC returns the unit's road-user-charge record, nil when RUC does
	// not apply to this variant or no licence has been bought.
	RUC() *RoadUserCharge

	// RUCApplicable reports whether this unit is subject to road user
	// charges at all.
	RUCApplicable() bool
}

// PowerUnitSpec is the towing vehicle: car, ute or truck. RUC applies when
// the fuel is diesel or electric.
type PowerUnitSpec struct {
	VehicleType    VehicleType     `json:"vehicleType"`
	FuelType       FuelType        `json:"fuelType"`
	Class4UnitType Class4UnitType  `json:"class4UnitType,omitempty"`
	Configuration  Configuration   `json:"configuration,omitempty"`
	Ruc            *RoadUserCharge `json:"ruc,omitempty"`
}

func (s PowerUnitSpec) Kind() SpecKind       { return SpecPowerUnit }
func (s PowerUnitSpec) RUC() *RoadUserCharge { return s.Ruc }
func (s PowerUnitSpec) RUCApplicable() bool {
	return s.FuelType == FuelDiesel || s.FuelType == FuelElectric
}

// LightTrailerSpec is a light vehicle trailer. No RUC, no odometer.
type LightTrailerSpec struct {
	Axles Configuration `json:"axles"`
}

func (s LightTrailerSpec) Kind() SpecKind       { return SpecLightTrailer }
func (s LightTrailerSpec) RUC() *RoadUserCharge { return nil }
func (s LightTrailerSpec) RUCApplicable() bool  { return false }

// HeavyTrailerSpec is a class 3 or class 5 trailer. RUC always applies.
type HeavyTrailerSpec struct {
	Class         HeavyTrailerClass `json:"class"`
	Configuration Configuration     `json:"configuration,omitempty"`
	Ruc           *RoadUserCharge   `json:"ruc,omitempty"`
}

func (s HeavyTrailerSpec) Kind() SpecKind       { return SpecHeavyTrailer }
func (s HeavyTrailerSpec) RUC() *RoadUserCharge { return s.Ruc }
func (s HeavyTrailerSpec) RUCApplicable() bool  { return true }

// Unit slot positions within a vehicle set.
const (
	UnitPowerUnit = 1
	UnitTrailer1  = 2
	UnitTrailer2  = 3
)

// VehicleAsset is one unit of a vehicle set.
//
// Identity: id is the hard primary key; (vehicleSetId, unitNumber) is the
// soft alternate key used only during batch upsert, so re-submitting an
// edited wizard set replaces its slots instead of duplicating them.
type VehicleAsset struct {
	ID                uuid.UUID
	VehicleSetID      uuid.UUID
	UnitNumber        int
	Rego              string
	RegoExpiry        *time.Time
	Make              string
	Model             string
	Year              int
	CertificateType   CertificateType
	CertificateExpiry *time.Time
	OdometerKm        *int
	Spec              VehicleSpec
	CreatedAt         time.Time
}

// IsPowerUnit reports whether the asset is the towing vehicle.
func (a VehicleAsset) IsPowerUnit() bool {
	return a.Spec != nil && a.Spec.Kind() == SpecPowerUnit
}

// Normalize applies storage hygiene without changing business meaning:
// rego is trimmed and uppercased, make/model trimmed, and any empty id,
// set id or creation time is filled in.
func (a *VehicleAsset) Normalize(now time.Time) {
	a.Rego = strings.ToUpper(strings.TrimSpace(a.Rego))
	a.Make = strings.TrimSpace(a.Make)
	a.Model = strings.TrimSpace(a.Model)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.VehicleSetID == uuid.Nil {
		a.VehicleSetID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
}

// RUCRemainingKm returns the kilometres left on the current RUC licence
// against the unit's odometer, or nil when RUC does not apply or the data
// to compute it is missing. Never negative.
func (a VehicleAsset) RUCRemainingKm() *int {
	if a.Spec == nil || !a.Spec.RUCApplicable() || a.OdometerKm == nil {
		return nil
	}
	ruc := a.Spec.RUC()
	if ruc == nil || ruc.LicenceEndKm == 0 {
		return nil
	}
	remaining := ruc.LicenceEndKm - *a.OdometerKm
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// RUCOverdue reports whether the odometer has passed the licence end.
func (a VehicleAsset) RUCOverdue() bool {
	if a.Spec == nil || !a.Spec.RUCApplicable() || a.OdometerKm == nil {
		return false
	}
	ruc := a.Spec.RUC()
	return ruc != nil && ruc.LicenceEndKm > 0 && *a.OdometerKm > ruc.LicenceEndKm
}

// vehicleAssetJSON is the wire envelope: shared fields plus a kind tag and
// the variant payload.
type vehicleAssetJSON struct {
	ID                uuid.UUID       `json:"id"`
	VehicleSetID      uuid.UUID       `json:"vehicleSetId"`
	UnitNumber        int             `json:"unitNumber"`
	Rego              string          `json:"rego"`
	RegoExpiry        *time.Time      `json:"regoExpiry,omitempty"`
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int             `json:"year"`
	CertificateType   CertificateType `json:"certificateType"`
	CertificateExpiry *time.Time      `json:"certificateExpiry,omitempty"`
	OdometerKm        *int            `json:"odometerKm,omitempty"`
	Kind              SpecKind        `json:"kind"`
	Spec              json.RawMessage `json:"spec"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// MarshalJSON encodes the asset with its spec variant under a kind tag.
func (a VehicleAsset) MarshalJSON() ([]byte, error) {
	if a.Spec == nil {
		return nil, fmt.Errorf("vehicle asset %s has no spec", a.ID)
	}
	spec, err := json.Marshal(a.Spec)
	if err != nil {
		return nil, fmt.Errorf("marshal vehicle spec: %w", err)
	}
	return json.Marshal(vehicleAssetJSON{
		ID:                a.ID,
		VehicleSetID:      a.VehicleSetID,
		UnitNumber:        a.UnitNumber,
		Rego:              a.Rego,
		RegoExpiry:        a.RegoExpiry,
		Make:              a.Make,
		Model:             a.Model,
		Year:              a.Year,
		CertificateType:   a.CertificateType,
		CertificateExpiry: a.CertificateExpiry,
		OdometerKm:        a.OdometerKm,
		Kind:              a.Spec.Kind(),
		Spec:              spec,
		CreatedAt:         a.CreatedAt,
	})
}

// UnmarshalJSON decodes the envelope and dispatches on the kind tag.
func (a *VehicleAsset) UnmarshalJSON(data []byte) error {
	var env vehicleAssetJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var spec VehicleSpec
	switch env.Kind {
	case SpecPowerUnit:
		var s PowerUnitSpec
		if err := json.Unmarshal(env.Spec, &s); err != nil {
			return fmt.Errorf("unmarshal power unit spec: %w", err)
		}
		spec = s
	case SpecLightTrailer:
		var s LightTrailerSpec
		if err := json.Unmarshal(env.Spec, &s); err != nil {
			return fmt.Errorf("unmarshal light trailer spec: %w", err)
		}
		spec = s
	case SpecHeavyTrailer:
		var s HeavyTrailerSpec
		if err := json.Unmarshal(env.Spec, &s); err != nil {
			return fmt.Errorf("unmarshal heavy trailer spec: %w", err)
		}
		spec = s
	default:
		return fmt.Errorf("unknown vehicle spec kind %q", env.Kind)
	}

	*a = VehicleAsset{
		ID:                env.ID,
		VehicleSetID:      env.VehicleSetID,
		UnitNumber:        env.UnitNumber,
		Rego:              env.Rego,
		RegoExpiry:        env.RegoExpiry,
		Make:              env.Make,
		Model:             env.Model,
		Year:              env.Year,
		CertificateType:   env.CertificateType,
		CertificateExpiry: env.CertificateExpiry,
		OdometerKm:        env.OdometerKm,
		Spec:              spec,
		CreatedAt:         env.CreatedAt,
	}
	return nil
}
