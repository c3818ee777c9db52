package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulory/haulory/internal/domain"
)

func testJobInput(ref string) CreateJobInput {
	return CreateJobInput{
		PickupCompany:   "Acme",
		PickupAddress:   "1 Pickup Rd",
		DeliveryCompany: "Bolt",
		DeliveryAddress: "2 Drop St",
		ReferenceNumber: ref,
		LoadDescription: "pallets",
		RateType:        domain.RateFixed,
		RateValue:       500,
		Quantity:        2,
	}
}

func TestCreateJob_AssignsSortOrderAndInvoice(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	first, err := a.CreateJob(ctx, testJobInput("R1"))
	require.NoError(t, err)
	second, err := a.CreateJob(ctx, testJobInput("R2"))
	require.NoError(t, err)

	assert.Equal(t, 1, first.SortOrder)
	assert.Equal(t, 2, second.SortOrder)
	assert.Len(t, first.InvoiceNumber, 8, "blank invoice number gets generated")
	assert.Equal(t, float64(1000), first.Total())
}

func TestCreateJob_Validation(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	bad := testJobInput("R1")
	bad.PickupCompany = "  "
	_, err := a.CreateJob(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = testJobInput("R1")
	bad.Quantity = 0
	_, err = a.CreateJob(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = testJobInput("R1")
	bad.RateType = "hourly"
	_, err = a.CreateJob(ctx, bad)
	assert.True(t, IsValidation(err))
}

func TestReorderJobs(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	j1, err := a.CreateJob(ctx, testJobInput("R1"))
	require.NoError(t, err)
	j2, err := a.CreateJob(ctx, testJobInput("R2"))
	require.NoError(t, err)
	j3, err := a.CreateJob(ctx, testJobInput("R3"))
	require.NoError(t, err)

	require.NoError(t, a.ReorderJobs(ctx, []uuid.UUID{j3.ID, j1.ID, j2.ID}))

	jobs, err := a.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "R3", jobs[0].ReferenceNumber)
	assert.Equal(t, "R1", jobs[1].ReferenceNumber)
	assert.Equal(t, "R2", jobs[2].ReferenceNumber)
	for i, j := range jobs {
		assert.Equal(t, i+1, j.SortOrder, "contiguous sort orders after reorder")
	}

	// Incomplete or unknown orderings are rejected whole.
	err = a.ReorderJobs(ctx, []uuid.UUID{j1.ID, j2.ID})
	assert.True(t, IsValidation(err))
	err = a.ReorderJobs(ctx, []uuid.UUID{j1.ID, j2.ID, uuid.New()})
	assert.True(t, IsValidation(err))
}

func TestCompleteDelivery_EndToEnd(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	job, err := a.CreateJob(ctx, testJobInput("R1"))
	require.NoError(t, err)
	assert.Equal(t, float64(1000), job.Total())

	receipt, err := a.CompleteDelivery(ctx, job.ID, "R. Receiver", testSignature())
	require.NoError(t, err)
	assert.Equal(t, job.ID, receipt.JobID)
	assert.Equal(t, float64(1000), receipt.Total)
	assert.Equal(t, "R. Receiver", receipt.ReceiverName)

	jobs, err := a.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs, "delivered job leaves the board")

	receipts, err := a.ListReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, receipt.ID, receipts[0].ID)
}

func TestCompleteDelivery_RequiresReceiverAndSignature(t *testing.T) {
	a := newLoggedInApp(t)
	ctx := context.Background()

	job, err := a.CreateJob(ctx, testJobInput("R1"))
	require.NoError(t, err)

	_, err = a.CompleteDelivery(ctx, job.ID, "  ", testSignature())
	assert.True(t, IsValidation(err))

	// A stray two-point tap is not a signature.
	tap := domain.Signature{Strokes: []domain.SignatureStroke{{Points: []domain.SignaturePoint{{X: 1}, {X: 2}}}}}
	_, err = a.CompleteDelivery(ctx, job.ID, "R. Receiver", tap)
	assert.True(t, IsValidation(err))

	jobs, err := a.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "failed completion leaves the job in place")
}

func TestCompleteDelivery_UnknownJob(t *testing.T) {
	a := newLoggedInApp(t)

	_, err := a.CompleteDelivery(context.Background(), uuid.New(), "R. Receiver", testSignature())
	assert.True(t, IsNotFound(err))
}
