package correlation

import (
	"errors"
	"time"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
)

var ErrInvalidReferenceID = errors.New("invalid reference id")

// Pending links a reference ID to the context of an in-flight hosted page attempt.
// It is written once at issuance and only ever transitions to used.
type Pending struct {
	referenceID           string
	customerInfo          customer.Info
	existingCustomerEmail string
	customerProfileID     string
	amount                payment.Money
	createProfile         bool
	used                  bool
	usedAt                *time.Time
	createdAt             time.Time
	expiresAt             time.Time
}

type PendingParams struct {
	CustomerInfo          customer.Info
	ExistingCustomerEmail string
	CustomerProfileID     string
	Amount                payment.Money
	CreateProfile         bool
}

func NewPending(referenceID string, p PendingParams, now time.Time, ttl time.Duration) (*Pending, error) {
	if referenceID == "" || len(referenceID) > MaxReferenceIDLength {
		return nil, ErrInvalidReferenceID
	}
	return &Pending{
		referenceID:           referenceID,
		customerInfo:          p.CustomerInfo,
		existingCustomerEmail: p.ExistingCustomerEmail,
		customerProfileID:     p.CustomerProfileID,
		amount:                p.Amount,
		createProfile:         p.CreateProfile,
		createdAt:             now,
		expiresAt:             now.Add(ttl),
	}, nil
}

func (p *Pending) ReferenceID() string           { return p.referenceID }
func (p *Pending) CustomerInfo() customer.Info   { return p.customerInfo }
func (p *Pending) ExistingCustomerEmail() string { return p.existingCustomerEmail }
func (p *Pending) CustomerProfileID() string     { return p.customerProfileID }
func (p *Pending) Amount() payment.Money         { return p.amount }
func (p *Pending) CreateProfile() bool           { return p.createProfile }
func (p *Pending) Used() bool                    { return p.used }
func (p *Pending) UsedAt() *time.Time            { return p.usedAt }
func (p *Pending) CreatedAt() time.Time          { return p.createdAt }
func (p *Pending) ExpiresAt() time.Time          { return p.expiresAt }

// IsExpired is advisory; nothing purges expired records.
func (p *Pending) IsExpired(now time.Time) bool {
	return !now.Before(p.expiresAt)
}

// CustomerEmail is the snapshot email, falling back to the returning-customer lookup key.
func (p *Pending) CustomerEmail() string {
	if e := p.customerInfo.Email(); !e.IsZero() {
		return e.Value()
	}
	return p.existingCustomerEmail
}
