package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/domain"
)

// CreateDriver adds a sub-profile owned by the acting account. Sub-profiles
// never link to an account; only registration creates the main profile.
func (a *App) CreateDriver(ctx context.Context, firstName, lastName, email string) (domain.DriverProfile, error) {
	owner, err := a.requireActing()
	if err != nil {
		return domain.DriverProfile{}, err
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return domain.DriverProfile{}, validationf("first and last name are required")
	}

	driver := domain.NewDriverProfile(owner, nil, firstName, lastName, email)
	if err := a.repos.Drivers.Save(ctx, driver); err != nil {
		return domain.DriverProfile{}, fmt.Errorf("create driver: %w", err)
	}
	a.log.Info("driver created", "driver", driver.ID, "owner", owner)
	return driver, nil
}

// ListDrivers returns the acting account's profiles, main profile included.
func (a *App) ListDrivers(ctx context.Context) ([]domain.DriverProfile, error) {
	owner, err := a.requireActing()
	if err != nil {
		return nil, err
	}
	return a.repos.Drivers.GetAllByOwner(ctx, owner)
}

// UpdateDriverIdentity renames a profile. When the profile is the acting
// account's main profile, the account identity is updated in step so the
// two never drift apart.
func (a *App) UpdateDriverIdentity(ctx context.Context, driverID uuid.UUID, firstName, lastName, email string) error {
	owner, err := a.requireActing()
	if err != nil {
		return err
	}
	driver, err := a.ownedDriver(ctx, owner, driverID)
	if err != nil {
		return err
	}

	driver.UpdateIdentity(firstName, lastName, email)
	if err := a.repos.Drivers.Save(ctx, *driver); err != nil {
		return fmt.Errorf("update driver identity: %w", err)
	}

	if driver.IsMainProfile() && *driver.LinkedAccountID == owner {
		account, err := a.repos.Accounts.GetByID(ctx, owner)
		if err != nil {
			return fmt.Errorf("update driver identity: %w", err)
		}
		if account != nil {
			account.UpdateIdentity(firstName, lastName, email)
			if err := a.repos.Accounts.Update(ctx, *account); err != nil {
				return fmt.Errorf("update driver identity: account: %w", err)
			}
		}
	}
	return nil
}

// UpdateDriverLicence sets or clears a profile's licence number.
func (a *App) UpdateDriverLicence(ctx context.Context, driverID uuid.UUID, licenceNumber string) error {
	owner, err := a.requireActing()
	if err != nil {
		return err
	}
	driver, err := a.ownedDriver(ctx, owner, driverID)
	if err != nil {
		return err
	}
	driver.UpdateLicenceNumber(licenceNumber)
	if err := a.repos.Drivers.Save(ctx, *driver); err != nil {
		return fmt.Errorf("update driver licence: %w", err)
	}
	return nil
}

// UpdateDriverEmergencyContact replaces a profile's emergency contact. All
// required contact fields must be present.
func (a *App) UpdateDriverEmergencyContact(ctx context.Context, driverID uuid.UUID, contact domain.EmergencyContact) error {
	owner, err := a.requireActing()
	if err != nil {
		return err
	}
	if !contact.IsSet() {
		return validationf("emergency contact requires name, relationship, email and phone")
	}
	driver, err := a.ownedDriver(ctx, owner, driverID)
	if err != nil {
		return err
	}
	driver.UpdateEmergencyContact(contact)
	if err := a.repos.Drivers.Save(ctx, *driver); err != nil {
		return fmt.Errorf("update emergency contact: %w", err)
	}
	return nil
}

// ownedDriver loads a profile and checks it belongs to owner. A profile
// owned by someone else reads as not found.
func (a *App) ownedDriver(ctx context.Context, owner, driverID uuid.UUID) (*domain.DriverProfile, error) {
	drivers, err := a.repos.Drivers.GetAllByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range drivers {
		if drivers[i].ID == driverID {
			return &drivers[i], nil
		}
	}
	return nil, notFoundf("driver %s not found", driverID)
}
