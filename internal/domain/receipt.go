package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeliveryReceipt is the immutable audit snapshot of a completed job.
//
// Created once per job id; a retried completion is idempotent. Receipts
// are never mutated or deleted. All billing fields are copied from the job
// at completion time, so later edits to anything else can never change
// what was signed for.
type DeliveryReceipt struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"jobId"`
	ReferenceNumber string    `json:"referenceNumber"`
	InvoiceNumber   string    `json:"invoiceNumber"`
	PickupCompany   string    `json:"pickupCompany"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryCompany string    `json:"deliveryCompany"`
	DeliveryAddress string    `json:"deliveryAddress"`
	LoadDescription string    `json:"loadDescription"`
	RateType        RateType  `json:"rateType"`
	RateValue       float64   `json:"rateValue"`
	Quantity        int       `json:"quantity"`
	Total           float64   `json:"total"`
	ReceiverName    string    `json:"receiverName"`
	DeliveredAt     time.Time `json:"deliveredAt"`
	Signature       Signature `json:"signature"`
}

// NewDeliveryReceipt snapshots job into a receipt.
func NewDeliveryReceipt(job Job, receiverName string, deliveredAt time.Time, signature Signature) DeliveryReceipt {
	return DeliveryReceipt{
		ID:              uuid.New(),
		JobID:           job.ID,
		ReferenceNumber: job.ReferenceNumber,
		InvoiceNumber:   job.InvoiceNumber,
		PickupCompany:   job.PickupCompany,
		PickupAddress:   job.PickupAddress,
		DeliveryCompany: job.DeliveryCompany,
		DeliveryAddress: job.DeliveryAddress,
		LoadDescription: job.LoadDescription,
		RateType:        job.RateType,
		RateValue:       job.RateValue,
		Quantity:        job.Quantity,
		Total:           job.Total(),
		ReceiverName:    strings.TrimSpace(receiverName),
		DeliveredAt:     deliveredAt,
		Signature:       signature,
	}
}
