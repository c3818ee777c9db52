package repo

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// Jobs is the active job repository. Upsert key: id. Jobs leave this
// collection only by explicit delete, which the delivery flow performs
// after writing the receipt.
type Jobs struct {
	col *docstore.Collection[domain.Job]
}

// NewJobs binds the jobs collection.
func NewJobs(env *docstore.Env) *Jobs {
	return &Jobs{col: docstore.NewCollection[domain.Job](env, jobsFile)}
}

// Add appends a job.
func (r *Jobs) Add(ctx context.Context, job domain.Job) error {
	return r.col.Update(ctx, func(records []domain.Job) ([]domain.Job, bool, error) {
		return append(records, job), true, nil
	})
}

// GetAll returns every job ordered by sort order.
func (r *Jobs) GetAll(ctx context.Context) ([]domain.Job, error) {
	var all []domain.Job
	err := r.col.View(ctx, func(records []domain.Job) error {
		all = append(all, records...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SortOrder < all[j].SortOrder })
	return all, nil
}

// GetByID finds a job by id, nil when unknown.
func (r *Jobs) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var found *domain.Job
	err := r.col.View(ctx, func(records []domain.Job) error {
		for _, j := range records {
			if j.ID == id {
				found = &j
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Update replaces a job by id. A missing id is a silent no-op.
func (r *Jobs) Update(ctx context.Context, job domain.Job) error {
	return r.col.Update(ctx, func(records []domain.Job) ([]domain.Job, bool, error) {
		for i, existing := range records {
			if existing.ID == job.ID {
				records[i] = job
				return records, true, nil
			}
		}
		return records, false, nil
	})
}

// Delete removes a job by id. Deleting an unknown id leaves the file
// untouched.
func (r *Jobs) Delete(ctx context.Context, id uuid.UUID) error {
	return r.col.Update(ctx, func(records []domain.Job) ([]domain.Job, bool, error) {
		kept := records[:0]
		for _, j := range records {
			if j.ID != id {
				kept = append(kept, j)
			}
		}
		return kept, len(kept) != len(records), nil
	})
}

// NextSortOrder returns max(sortOrder)+1 across all jobs, or 1 when the
// collection is empty. Insertion order of existing jobs is irrelevant.
func (r *Jobs) NextSortOrder(ctx context.Context) (int, error) {
	next := 1
	err := r.col.View(ctx, func(records []domain.Job) error {
		max := 0
		for _, j := range records {
			if j.SortOrder > max {
				max = j.SortOrder
			}
		}
		next = max + 1
		return nil
	})
	return next, err
}

// ReplaceAll persists jobs as the entire collection.
//
// The caller must supply the complete merged set: any record omitted here
// is lost. Used by the reorder flow, which rewrites every sort order.
func (r *Jobs) ReplaceAll(ctx context.Context, jobs []domain.Job) error {
	return r.col.Update(ctx, func([]domain.Job) ([]domain.Job, bool, error) {
		return jobs, true, nil
	})
}
