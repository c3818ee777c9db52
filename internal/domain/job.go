package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RateType selects how a job's total is derived from its rate.
type RateType string

const (
	RateFixed   RateType = "fixed"
	RatePerUnit RateType = "perUnit"
)

// Job is an active shipment awaiting delivery.
//
// Identity: id. SortOrder is a manually assigned total order within the
// active list. A job and its delivery receipt are mutually exclusive
// lifecycle states of one shipment: completing delivery writes the receipt
// and removes the job.
type Job struct {
	ID              uuid.UUID `json:"id"`
	PickupCompany   string    `json:"pickupCompany"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryCompany string    `json:"deliveryCompany"`
	DeliveryAddress string    `json:"deliveryAddress"`
	ReferenceNumber string    `json:"referenceNumber"`
	LoadDescription string    `json:"loadDescription"`
	InvoiceNumber   string    `json:"invoiceNumber"`
	RateType        RateType  `json:"rateType"`
	RateValue       float64   `json:"rateValue"`
	Quantity        int       `json:"quantity"`
	SortOrder       int       `json:"sortOrder"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewJob creates a job with a fresh id. The invoice number is derived from
// a random id when the caller leaves it blank.
func NewJob(pickupCompany, pickupAddress, deliveryCompany, deliveryAddress, referenceNumber, loadDescription, invoiceNumber string, rateType RateType, rateValue float64, quantity, sortOrder int, createdAt time.Time) Job {
	if strings.TrimSpace(invoiceNumber) == "" {
		invoiceNumber = NewInvoiceNumber()
	}
	return Job{
		ID:              uuid.New(),
		PickupCompany:   strings.TrimSpace(pickupCompany),
		PickupAddress:   strings.TrimSpace(pickupAddress),
		DeliveryCompany: strings.TrimSpace(deliveryCompany),
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		ReferenceNumber: strings.TrimSpace(referenceNumber),
		LoadDescription: strings.TrimSpace(loadDescription),
		InvoiceNumber:   invoiceNumber,
		RateType:        rateType,
		RateValue:       rateValue,
		Quantity:        quantity,
		SortOrder:       sortOrder,
		CreatedAt:       createdAt,
	}
}

// NewInvoiceNumber returns a short, human-quotable invoice number: the
// first 8 hex characters of a random id.
func NewInvoiceNumber() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// Total is the derived amount: rate value times quantity, for both fixed
// and per-unit rates (a fixed-rate job carries quantity 1 by convention,
// but the formula holds regardless).
func (j Job) Total() float64 {
	return j.RateValue * float64(j.Quantity)
}

// Signature is the captured signature payload: strokes of points from the
// signing pad, persisted verbatim on the delivery receipt.
type Signature struct {
	Strokes []SignatureStroke `json:"strokes"`
}

// SignatureStroke is one continuous pen stroke.
type SignatureStroke struct {
	Points []SignaturePoint `json:"points"`
}

// SignaturePoint is one sampled pad coordinate.
type SignaturePoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// IsSet reports whether the signature contains at least one usable stroke.
// A stroke of one or two points is a stray tap, not a signature.
func (s Signature) IsSet() bool {
	for _, stroke := range s.Strokes {
		if len(stroke.Points) > 2 {
			return true
		}
	}
	return false
}
