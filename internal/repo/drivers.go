package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// Drivers is the driver profile repository. Upsert key: id. Invariant: at
// most one profile per distinct linked account id.
type Drivers struct {
	col *docstore.Collection[domain.DriverProfile]
}

// NewDrivers binds the drivers collection.
func NewDrivers(env *docstore.Env) *Drivers {
	return &Drivers{col: docstore.NewCollection[domain.DriverProfile](env, driversFile)}
}

// GetAll returns every driver profile.
func (r *Drivers) GetAll(ctx context.Context) ([]domain.DriverProfile, error) {
	var all []domain.DriverProfile
	err := r.col.View(ctx, func(records []domain.DriverProfile) error {
		all = append(all, records...)
		return nil
	})
	return all, err
}

// GetAllByOwner returns the profiles managed by one account.
func (r *Drivers) GetAllByOwner(ctx context.Context, ownerAccountID uuid.UUID) ([]domain.DriverProfile, error) {
	if ownerAccountID == uuid.Nil {
		return nil, nil
	}
	var matched []domain.DriverProfile
	err := r.col.View(ctx, func(records []domain.DriverProfile) error {
		for _, d := range records {
			if d.OwnerAccountID == ownerAccountID {
				matched = append(matched, d)
			}
		}
		return nil
	})
	return matched, err
}

// GetByLinkedAccount returns the main profile mirroring the given account,
// or nil when none exists.
func (r *Drivers) GetByLinkedAccount(ctx context.Context, accountID uuid.UUID) (*domain.DriverProfile, error) {
	if accountID == uuid.Nil {
		return nil, nil
	}
	var found *domain.DriverProfile
	err := r.col.View(ctx, func(records []domain.DriverProfile) error {
		for _, d := range records {
			if d.LinkedAccountID != nil && *d.LinkedAccountID == accountID {
				found = &d
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Save upserts a profile by id. The owner account must be set, and the
// linked-account invariant is enforced: saving a profile whose linked
// account already belongs to a different profile fails with
// IDENTITY_VIOLATION.
func (r *Drivers) Save(ctx context.Context, driver domain.DriverProfile) error {
	if driver.OwnerAccountID == uuid.Nil {
		return fmt.Errorf("driver profile owner account must be set before saving")
	}
	resolve := docstore.ResolveByKey(func(d domain.DriverProfile) uuid.UUID { return d.ID })

	return r.col.Update(ctx, func(records []domain.DriverProfile) ([]domain.DriverProfile, bool, error) {
		if driver.LinkedAccountID != nil && *driver.LinkedAccountID != uuid.Nil {
			for _, existing := range records {
				if existing.ID != driver.ID &&
					existing.LinkedAccountID != nil &&
					*existing.LinkedAccountID == *driver.LinkedAccountID {
					return nil, false, docstore.NewIdentityViolation(
						fmt.Sprintf("account %s already has a linked driver profile", driver.LinkedAccountID))
				}
			}
		}
		return docstore.Apply(records, driver, resolve), true, nil
	})
}
