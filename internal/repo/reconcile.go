package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// resolveAsset is the dual-key identity resolution for vehicle assets:
// the hard primary key (id) wins, then the soft alternate key
// (vehicleSetId, unitNumber), then append.
//
// The soft key models re-submitting an edited wizard set: the incoming
// record carries no id but names the slot it replaces.
func resolveAsset(incoming domain.VehicleAsset, existing []domain.VehicleAsset) docstore.Resolution {
	if incoming.ID != uuid.Nil {
		for i, a := range existing {
			if a.ID == incoming.ID {
				return docstore.ReplaceAt(i)
			}
		}
	}
	if incoming.VehicleSetID != uuid.Nil && incoming.UnitNumber > 0 {
		for i, a := range existing {
			if a.VehicleSetID == incoming.VehicleSetID && a.UnitNumber == incoming.UnitNumber {
				return docstore.ReplaceAt(i)
			}
		}
	}
	return docstore.Append
}

// reconcile merges a batch of incoming assets into the working collection,
// in order. Each record is normalized first (which fills any empty id or
// set id), then resolved against the progressively updated collection, so
// two records in one batch can land on two different existing slots.
//
// Edge case: when two incoming records target the same soft key, the later
// one wins. That is the defined outcome, not an error.
func reconcile(records []domain.VehicleAsset, incoming []domain.VehicleAsset, now time.Time) []domain.VehicleAsset {
	for _, in := range incoming {
		in.Normalize(now)
		records = docstore.Apply(records, in, resolveAsset)
	}
	return records
}
