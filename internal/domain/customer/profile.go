package customer

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the local cache of a gateway-side customer profile, one per email.
type Profile struct {
	id               uuid.UUID
	email            Email
	gatewayProfileID string
	address          Address
	lastUsedAt       time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewProfile(info Info, gatewayProfileID string, now time.Time) (*Profile, error) {
	if gatewayProfileID == "" {
		return nil, ErrMissingGatewayID
	}
	if info.Email().IsZero() {
		return nil, ErrInvalidEmail
	}
	return &Profile{
		id:               uuid.New(),
		email:            info.Email(),
		gatewayProfileID: gatewayProfileID,
		address:          info.Address(),
		lastUsedAt:       now,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructProfile(id uuid.UUID, email Email, gatewayProfileID string, address Address, lastUsedAt, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		id:               id,
		email:            email,
		gatewayProfileID: gatewayProfileID,
		address:          address,
		lastUsedAt:       lastUsedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (p *Profile) ID() uuid.UUID            { return p.id }
func (p *Profile) Email() Email             { return p.email }
func (p *Profile) GatewayProfileID() string { return p.gatewayProfileID }
func (p *Profile) Address() Address         { return p.address }
func (p *Profile) LastUsedAt() time.Time    { return p.lastUsedAt }
func (p *Profile) CreatedAt() time.Time     { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time     { return p.updatedAt }

// Info rebuilds the customer snapshot for gateway requests.
func (p *Profile) Info() Info {
	return Info{email: p.email, address: p.address}
}
