package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// Receipts is the delivery receipt repository. Receipts are append-only
// and idempotent per job id: the first receipt for a job wins, a retried
// add is silently skipped. Nothing ever mutates or deletes a receipt.
type Receipts struct {
	col *docstore.Collection[domain.DeliveryReceipt]
}

// NewReceipts binds the receipts collection.
func NewReceipts(env *docstore.Env) *Receipts {
	return &Receipts{col: docstore.NewCollection[domain.DeliveryReceipt](env, receiptsFile)}
}

// Add appends a receipt unless one already exists for the same job id.
func (r *Receipts) Add(ctx context.Context, receipt domain.DeliveryReceipt) error {
	return r.col.Update(ctx, func(records []domain.DeliveryReceipt) ([]domain.DeliveryReceipt, bool, error) {
		for _, existing := range records {
			if existing.JobID == receipt.JobID {
				return records, false, nil
			}
		}
		return append(records, receipt), true, nil
	})
}

// GetAll returns every receipt.
func (r *Receipts) GetAll(ctx context.Context) ([]domain.DeliveryReceipt, error) {
	var all []domain.DeliveryReceipt
	err := r.col.View(ctx, func(records []domain.DeliveryReceipt) error {
		all = append(all, records...)
		return nil
	})
	return all, err
}

// GetByJobID returns the receipts recorded for one job. At most one exists
// under the idempotency rule, but the query does not assume it.
func (r *Receipts) GetByJobID(ctx context.Context, jobID uuid.UUID) ([]domain.DeliveryReceipt, error) {
	var matched []domain.DeliveryReceipt
	err := r.col.View(ctx, func(records []domain.DeliveryReceipt) error {
		for _, rec := range records {
			if rec.JobID == jobID {
				matched = append(matched, rec)
			}
		}
		return nil
	})
	return matched, err
}
