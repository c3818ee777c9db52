package domain

import (
	"strings"

	"github.com/google/uuid"
)

// DriverStatus is the lifecycle flag on a driver profile.
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

// EmergencyContact is the value object attached to every driver profile.
type EmergencyContact struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Relationship         string `json:"relationship"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
	SecondaryPhoneNumber string `json:"secondaryPhoneNumber,omitempty"`
}

// NewEmergencyContact trims all fields; an empty secondary phone stays empty.
func NewEmergencyContact(firstName, lastName, relationship, email, phone, secondaryPhone string) EmergencyContact {
	return EmergencyContact{
		FirstName:            strings.TrimSpace(firstName),
		LastName:             strings.TrimSpace(lastName),
		Relationship:         strings.TrimSpace(relationship),
		Email:                strings.TrimSpace(email),
		PhoneNumber:          strings.TrimSpace(phone),
		SecondaryPhoneNumber: strings.TrimSpace(secondaryPhone),
	}
}

// IsSet reports whether every required field is present.
func (c EmergencyContact) IsSet() bool {
	return c.FirstName != "" &&
		c.LastName != "" &&
		c.Relationship != "" &&
		c.Email != "" &&
		c.PhoneNumber != ""
}

// DriverProfile is a driver managed by an account.
//
// OwnerAccountID is the account that manages the profile and must always be
// set. LinkedAccountID is set only when the profile mirrors the owner's own
// account, which makes it the "main" profile; at most one profile exists
// per distinct linked account id. Profiles are never deleted.
type DriverProfile struct {
	ID               uuid.UUID        `json:"id"`
	OwnerAccountID   uuid.UUID        `json:"ownerAccountId"`
	LinkedAccountID  *uuid.UUID       `json:"linkedAccountId,omitempty"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	LicenceNumber    string           `json:"licenceNumber,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Status           DriverStatus     `json:"status"`
}

// NewDriverProfile creates a profile owned by ownerAccountID. Pass a
// non-nil linkedAccountID only for the owner's own (main) profile.
func NewDriverProfile(ownerAccountID uuid.UUID, linkedAccountID *uuid.UUID, firstName, lastName, email string) DriverProfile {
	return DriverProfile{
		ID:              uuid.New(),
		OwnerAccountID:  ownerAccountID,
		LinkedAccountID: linkedAccountID,
		FirstName:       strings.TrimSpace(firstName),
		LastName:        strings.TrimSpace(lastName),
		Email:           NormalizeEmail(email),
		Status:          DriverActive,
	}
}

// IsMainProfile reports whether this profile mirrors an account.
func (d DriverProfile) IsMainProfile() bool {
	return d.LinkedAccountID != nil && *d.LinkedAccountID != uuid.Nil
}

// UpdateIdentity replaces the profile's name and email, normalized.
func (d *DriverProfile) UpdateIdentity(firstName, lastName, email string) {
	d.FirstName = strings.TrimSpace(firstName)
	d.LastName = strings.TrimSpace(lastName)
	d.Email = NormalizeEmail(email)
}

// UpdateLicenceNumber replaces the licence number; blank clears it.
func (d *DriverProfile) UpdateLicenceNumber(licenceNumber string) {
	d.LicenceNumber = strings.TrimSpace(licenceNumber)
}

// UpdateEmergencyContact replaces the emergency contact.
func (d *DriverProfile) UpdateEmergencyContact(contact EmergencyContact) {
	d.EmergencyContact = contact
}

// DisplayName returns "First Last" for UI surfaces.
func (d DriverProfile) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
