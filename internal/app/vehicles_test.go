package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulory/haulory/internal/domain"
)

func dieselTruck(rego string) domain.VehicleAsset {
	return domain.VehicleAsset{
		Rego: rego,
		Make: "Scania", Model: "R500", Year: 2020,
		CertificateType: domain.CertCOF,
		Spec: domain.PowerUnitSpec{
			VehicleType: domain.VehicleTruckClass4,
			FuelType:    domain.FuelDiesel,
		},
	}
}

func curtainsider(rego string) domain.VehicleAsset {
	return domain.VehicleAsset{
		Rego: rego,
		Spec: domain.HeavyTrailerSpec{
			Class:         domain.TrailerClass5,
			Configuration: domain.ConfigCurtainsider,
		},
	}
}

func TestCreateVehicleSet(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	setID, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{
		dieselTruck("TRK1"),
		curtainsider("TRL1"),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, setID)

	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, fleet, 2)
	for _, u := range fleet {
		assert.Equal(t, setID, u.VehicleSetID, "all units share the set id")
	}
	byUnit := map[int]domain.VehicleAsset{}
	for _, u := range fleet {
		byUnit[u.UnitNumber] = u
	}
	assert.True(t, byUnit[domain.UnitPowerUnit].IsPowerUnit())
	assert.Equal(t, "TRL1", byUnit[domain.UnitTrailer1].Rego)
}

func TestCreateVehicleSet_Validation(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	_, err := a.CreateVehicleSet(ctx, nil)
	assert.True(t, IsValidation(err))

	noRego := dieselTruck("  ")
	_, err = a.CreateVehicleSet(ctx, []domain.VehicleAsset{noRego})
	assert.True(t, IsValidation(err))

	timeTraveller := dieselTruck("TRK1")
	timeTraveller.Year = 2099
	_, err = a.CreateVehicleSet(ctx, []domain.VehicleAsset{timeTraveller})
	assert.True(t, IsValidation(err))

	noSpec := domain.VehicleAsset{Rego: "TRK1"}
	_, err = a.CreateVehicleSet(ctx, []domain.VehicleAsset{noSpec})
	assert.True(t, IsValidation(err))
}

func TestResubmitVehicleSet_ReplacesSlots(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	setID, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{
		dieselTruck("TRK1"),
		curtainsider("TRL1"),
	})
	require.NoError(t, err)

	// Edited wizard output: no ids, same slots, one new trailer.
	require.NoError(t, a.ResubmitVehicleSet(ctx, setID, []domain.VehicleAsset{
		dieselTruck("TRK2"),
		curtainsider("TRL2"),
		curtainsider("TRL3"),
	}))

	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, fleet, 3, "existing slots replaced, new slot appended")

	regos := map[int]string{}
	for _, u := range fleet {
		regos[u.UnitNumber] = u.Rego
	}
	assert.Equal(t, "TRK2", regos[domain.UnitPowerUnit])
	assert.Equal(t, "TRL2", regos[domain.UnitTrailer1])
	assert.Equal(t, "TRL3", regos[domain.UnitTrailer2])
}

func TestUpdateVehicleCompliance(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	_, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{dieselTruck("TRK1")})
	require.NoError(t, err)
	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	unit := fleet[0]

	certExpiry := testBase.AddDate(0, 6, 0)
	regoExpiry := testBase.AddDate(1, 0, 0)
	require.NoError(t, a.UpdateVehicleCompliance(ctx, unit.ID, domain.CertCOF, &certExpiry, &regoExpiry))

	got, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	require.NotNil(t, got[0].CertificateExpiry)
	assert.True(t, got[0].CertificateExpiry.Equal(certExpiry))

	err = a.UpdateVehicleCompliance(ctx, unit.ID, "rego", nil, nil)
	assert.True(t, IsValidation(err))
}

func TestUpdateVehicleOdometer_NeverBackwards(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	_, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{dieselTruck("TRK1")})
	require.NoError(t, err)
	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	id := fleet[0].ID

	require.NoError(t, a.UpdateVehicleOdometer(ctx, id, 120000))
	err = a.UpdateVehicleOdometer(ctx, id, 119000)
	assert.True(t, IsValidation(err))

	got, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	require.NotNil(t, got[0].OdometerKm)
	assert.Equal(t, 120000, *got[0].OdometerKm)
}

func TestRecordRUCPurchase(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	petrolCar := domain.VehicleAsset{
		Rego: "CAR1",
		Spec: domain.PowerUnitSpec{VehicleType: domain.VehicleCar, FuelType: domain.FuelPetrol},
	}
	_, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{dieselTruck("TRK1")})
	require.NoError(t, err)
	_, err = a.CreateVehicleSet(ctx, []domain.VehicleAsset{petrolCar})
	require.NoError(t, err)

	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	var truck, car domain.VehicleAsset
	for _, u := range fleet {
		switch u.Rego {
		case "TRK1":
			truck = u
		case "CAR1":
			car = u
		}
	}

	require.NoError(t, a.UpdateVehicleOdometer(ctx, truck.ID, 100000))
	require.NoError(t, a.RecordRUCPurchase(ctx, truck.ID, 100000, 10000))

	got, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	for _, u := range got {
		if u.ID != truck.ID {
			continue
		}
		ruc := u.Spec.RUC()
		require.NotNil(t, ruc)
		assert.Equal(t, 110000, ruc.LicenceEndKm)
		assert.True(t, ruc.PurchasedAt.After(time.Time{}))
		remaining := u.RUCRemainingKm()
		require.NotNil(t, remaining)
		assert.Equal(t, 10000, *remaining)
		assert.False(t, u.RUCOverdue())
	}

	// Petrol units are not subject to RUC.
	err = a.RecordRUCPurchase(ctx, car.ID, 50000, 1000)
	assert.True(t, IsValidation(err))

	err = a.RecordRUCPurchase(ctx, truck.ID, 100000, 0)
	assert.True(t, IsValidation(err))
}

func TestRemoveVehicle(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	_, err := a.CreateVehicleSet(ctx, []domain.VehicleAsset{dieselTruck("TRK1"), curtainsider("TRL1")})
	require.NoError(t, err)
	fleet, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, fleet, 2)

	require.NoError(t, a.RemoveVehicle(ctx, fleet[0].ID))
	rest, err := a.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
