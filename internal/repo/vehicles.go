package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// Vehicles is the vehicle asset repository.
//
// Direct updates and deletes go by id only. Batch adds go through the slot
// reconciler (reconcile.go), which also recognizes the soft
// (vehicleSetId, unitNumber) key so a re-submitted wizard set replaces its
// slots instead of duplicating them.
type Vehicles struct {
	col *docstore.Collection[domain.VehicleAsset]
	now func() time.Time
}

// NewVehicles binds the vehicles collection. now stamps creation times
// during normalization.
func NewVehicles(env *docstore.Env, now func() time.Time) *Vehicles {
	if now == nil {
		now = time.Now
	}
	return &Vehicles{
		col: docstore.NewCollection[domain.VehicleAsset](env, vehiclesFile),
		now: now,
	}
}

// Add upserts a single asset through the reconciler.
func (r *Vehicles) Add(ctx context.Context, asset domain.VehicleAsset) error {
	return r.AddRange(ctx, []domain.VehicleAsset{asset})
}

// AddRange upserts a batch of assets and persists the whole batch as one
// save. An empty batch is a no-op.
func (r *Vehicles) AddRange(ctx context.Context, assets []domain.VehicleAsset) error {
	if len(assets) == 0 {
		return nil
	}
	return r.col.Update(ctx, func(records []domain.VehicleAsset) ([]domain.VehicleAsset, bool, error) {
		return reconcile(records, assets, r.now()), true, nil
	})
}

// GetAll returns every asset.
func (r *Vehicles) GetAll(ctx context.Context) ([]domain.VehicleAsset, error) {
	var all []domain.VehicleAsset
	err := r.col.View(ctx, func(records []domain.VehicleAsset) error {
		all = append(all, records...)
		return nil
	})
	return all, err
}

// GetByID finds an asset by id, nil when unknown.
func (r *Vehicles) GetByID(ctx context.Context, id uuid.UUID) (*domain.VehicleAsset, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var found *domain.VehicleAsset
	err := r.col.View(ctx, func(records []domain.VehicleAsset) error {
		for _, a := range records {
			if a.ID == id {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Update replaces an asset strictly by id; the soft slot key is never
// consulted here. A missing id is a silent no-op.
func (r *Vehicles) Update(ctx context.Context, asset domain.VehicleAsset) error {
	return r.col.Update(ctx, func(records []domain.VehicleAsset) ([]domain.VehicleAsset, bool, error) {
		for i, existing := range records {
			if existing.ID == asset.ID {
				asset.Normalize(r.now())
				records[i] = asset
				return records, true, nil
			}
		}
		return records, false, nil
	})
}

// Delete removes an asset by id.
func (r *Vehicles) Delete(ctx context.Context, id uuid.UUID) error {
	return r.col.Update(ctx, func(records []domain.VehicleAsset) ([]domain.VehicleAsset, bool, error) {
		kept := records[:0]
		for _, a := range records {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return kept, len(kept) != len(records), nil
	})
}
