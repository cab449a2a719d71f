package correlation

import (
	"time"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
)

// Snapshot is the storage shape shared by the correlation store backends.
type Snapshot struct {
	ReferenceID           string         `json:"reference_id" dynamodbav:"reference_id"`
	Customer              CustomerRecord `json:"customer" dynamodbav:"customer"`
	ExistingCustomerEmail string         `json:"existing_customer_email,omitempty" dynamodbav:"existing_customer_email,omitempty"`
	CustomerProfileID     string         `json:"customer_profile_id,omitempty" dynamodbav:"customer_profile_id,omitempty"`
	AmountCents           int64          `json:"amount_cents" dynamodbav:"amount_cents"`
	CreateProfile         bool           `json:"create_profile" dynamodbav:"create_profile"`
	Used                  bool           `json:"used" dynamodbav:"used"`
	UsedAt                *time.Time     `json:"used_at,omitempty" dynamodbav:"used_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt             time.Time      `json:"expires_at" dynamodbav:"-"`
	ExpiresAtEpoch        int64          `json:"-" dynamodbav:"expires_at"`
}

type CustomerRecord struct {
	Email     string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	FirstName string `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" dynamodbav:"last_name,omitempty"`
	Company   string `json:"company,omitempty" dynamodbav:"company,omitempty"`
	Address   string `json:"address,omitempty" dynamodbav:"address,omitempty"`
	City      string `json:"city,omitempty" dynamodbav:"city,omitempty"`
	State     string `json:"state,omitempty" dynamodbav:"state,omitempty"`
	Zip       string `json:"zip,omitempty" dynamodbav:"zip,omitempty"`
	Country   string `json:"country,omitempty" dynamodbav:"country,omitempty"`
	Phone     string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
}

func (p *Pending) Snapshot() Snapshot {
	addr := p.customerInfo.Address()
	return Snapshot{
		ReferenceID: p.referenceID,
		Customer: CustomerRecord{
			Email:     p.customerInfo.Email().Value(),
			FirstName: addr.FirstName,
			LastName:  addr.LastName,
			Company:   addr.Company,
			Address:   addr.Address,
			City:      addr.City,
			State:     addr.State,
			Zip:       addr.Zip,
			Country:   addr.Country,
			Phone:     addr.Phone,
		},
		ExistingCustomerEmail: p.existingCustomerEmail,
		CustomerProfileID:     p.customerProfileID,
		AmountCents:           p.amount.Cents(),
		CreateProfile:         p.createProfile,
		Used:                  p.used,
		UsedAt:                p.usedAt,
		CreatedAt:             p.createdAt,
		ExpiresAt:             p.expiresAt,
		ExpiresAtEpoch:        p.expiresAt.Unix(),
	}
}

// FromSnapshot rebuilds a record read back from a store. A snapshot without a
// valid email keeps an empty customer snapshot rather than failing the read.
func FromSnapshot(s Snapshot) (*Pending, error) {
	if s.ReferenceID == "" {
		return nil, ErrInvalidReferenceID
	}
	amount, err := payment.NewMoneyFromCents(s.AmountCents)
	if err != nil {
		return nil, err
	}
	var info customer.Info
	if s.Customer.Email != "" {
		info, err = customer.NewInfo(s.Customer.Email, customer.Address{
			FirstName: s.Customer.FirstName,
			LastName:  s.Customer.LastName,
			Company:   s.Customer.Company,
			Address:   s.Customer.Address,
			City:      s.Customer.City,
			State:     s.Customer.State,
			Zip:       s.Customer.Zip,
			Country:   s.Customer.Country,
			Phone:     s.Customer.Phone,
		})
		if err != nil {
			info = customer.Info{}
		}
	}
	expiresAt := s.ExpiresAt
	if expiresAt.IsZero() && s.ExpiresAtEpoch > 0 {
		expiresAt = time.Unix(s.ExpiresAtEpoch, 0).UTC()
	}
	return &Pending{
		referenceID:           s.ReferenceID,
		customerInfo:          info,
		existingCustomerEmail: s.ExistingCustomerEmail,
		customerProfileID:     s.CustomerProfileID,
		amount:                amount,
		createProfile:         s.CreateProfile,
		used:                  s.Used,
		usedAt:                s.UsedAt,
		createdAt:             s.CreatedAt,
		expiresAt:             expiresAt,
	}, nil
}
