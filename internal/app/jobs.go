package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/domain"
)

// CreateJobInput is the job entry form. A blank InvoiceNumber gets a
// generated one.
type CreateJobInput struct {
	PickupCompany   string
	PickupAddress   string
	DeliveryCompany string
	DeliveryAddress string
	ReferenceNumber string
	LoadDescription string
	InvoiceNumber   string
	RateType        domain.RateType
	RateValue       float64
	Quantity        int
}

// CreateJob appends a job at the end of the board.
func (a *App) CreateJob(ctx context.Context, in CreateJobInput) (domain.Job, error) {
	if _, err := a.requireActing(); err != nil {
		return domain.Job{}, err
	}
	if strings.TrimSpace(in.PickupCompany) == "" || strings.TrimSpace(in.DeliveryCompany) == "" {
		return domain.Job{}, validationf("pickup and delivery company are required")
	}
	if in.RateType != domain.RateFixed && in.RateType != domain.RatePerUnit {
		return domain.Job{}, validationf("rate type must be fixed or perUnit")
	}
	if in.RateValue < 0 {
		return domain.Job{}, validationf("rate value cannot be negative")
	}
	if in.Quantity < 1 {
		return domain.Job{}, validationf("quantity must be at least 1")
	}

	sortOrder, err := a.repos.Jobs.NextSortOrder(ctx)
	if err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	job := domain.NewJob(
		in.PickupCompany, in.PickupAddress,
		in.DeliveryCompany, in.DeliveryAddress,
		in.ReferenceNumber, in.LoadDescription, in.InvoiceNumber,
		in.RateType, in.RateValue, in.Quantity,
		sortOrder, a.now(),
	)
	if err := a.repos.Jobs.Add(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	a.log.Info("job created", "job", job.ID, "invoice", job.InvoiceNumber)
	return job, nil
}

// ListJobs returns the active board in sort order.
func (a *App) ListJobs(ctx context.Context) ([]domain.Job, error) {
	if _, err := a.requireActing(); err != nil {
		return nil, err
	}
	return a.repos.Jobs.GetAll(ctx)
}

// ReorderJobs rewrites the board in the given id order, assigning
// contiguous sort orders from 1. Every active job must appear exactly once.
func (a *App) ReorderJobs(ctx context.Context, order []uuid.UUID) error {
	if _, err := a.requireActing(); err != nil {
		return err
	}
	jobs, err := a.repos.Jobs.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("reorder jobs: %w", err)
	}
	if len(order) != len(jobs) {
		return validationf("reorder must list all %d active jobs, got %d", len(jobs), len(order))
	}

	byID := make(map[uuid.UUID]domain.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	reordered := make([]domain.Job, 0, len(order))
	for i, id := range order {
		job, ok := byID[id]
		if !ok {
			return validationf("unknown or repeated job id %s", id)
		}
		delete(byID, id)
		job.SortOrder = i + 1
		reordered = append(reordered, job)
	}

	if err := a.repos.Jobs.ReplaceAll(ctx, reordered); err != nil {
		return fmt.Errorf("reorder jobs: %w", err)
	}
	return nil
}

// CompleteDelivery finishes a job: it snapshots the receipt, then deletes
// the job from the board.
//
// The two writes hit different collections and are not transactional. The
// receipt is written first so a crash in between leaves a completed
// receipt plus a stale job; re-running the completion skips the duplicate
// receipt and just deletes the job.
func (a *App) CompleteDelivery(ctx context.Context, jobID uuid.UUID, receiverName string, signature domain.Signature) (domain.DeliveryReceipt, error) {
	if _, err := a.requireActing(); err != nil {
		return domain.DeliveryReceipt{}, err
	}
	if strings.TrimSpace(receiverName) == "" {
		return domain.DeliveryReceipt{}, validationf("receiver name is required")
	}
	if !signature.IsSet() {
		return domain.DeliveryReceipt{}, validationf("a signature is required")
	}

	job, err := a.repos.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("complete delivery: %w", err)
	}
	if job == nil {
		return domain.DeliveryReceipt{}, notFoundf("job %s not found", jobID)
	}

	receipt := domain.NewDeliveryReceipt(*job, receiverName, a.now(), signature)
	if err := a.repos.Receipts.Add(ctx, receipt); err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("complete delivery: receipt: %w", err)
	}
	// On a retry the add above was a no-op; return the stored snapshot, not
	// the one we just built.
	stored, err := a.repos.Receipts.GetByJobID(ctx, job.ID)
	if err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("complete delivery: %w", err)
	}
	if len(stored) > 0 {
		receipt = stored[0]
	}
	if err := a.repos.Jobs.Delete(ctx, job.ID); err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("complete delivery: remove job: %w", err)
	}

	a.log.Info("delivery completed", "job", job.ID, "total", receipt.Total)
	return receipt, nil
}

// ListReceipts returns every delivery receipt.
func (a *App) ListReceipts(ctx context.Context) ([]domain.DeliveryReceipt, error) {
	if _, err := a.requireActing(); err != nil {
		return nil, err
	}
	return a.repos.Receipts.GetAll(ctx)
}
