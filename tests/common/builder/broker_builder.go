//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	reqdto "accept-broker/internal/handler/dto/request"
)

type CustomerBuilder struct {
	Email     string
	FirstName string
	LastName  string
	Company   string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string
	Phone     string
}

func NewCustomerBuilder() *CustomerBuilder {
	return &CustomerBuilder{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "1 Main St",
		City:      "Bellevue",
		State:     "WA",
		Zip:       "98004",
		Country:   "US",
		Phone:     "425-555-0100",
	}
}

func (b *CustomerBuilder) With(mutate func(*CustomerBuilder)) *CustomerBuilder {
	mutate(b)
	return b
}

func (b *CustomerBuilder) BuildRequestDTO() reqdto.CustomerInfoRequest {
	return reqdto.CustomerInfoRequest{
		Email:     b.Email,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Company:   b.Company,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		Zip:       b.Zip,
		Country:   b.Country,
		Phone:     b.Phone,
	}
}

func (b *CustomerBuilder) BuildDomain() (customer.Info, error) {
	return customer.NewInfo(b.Email, customer.Address{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Company:   b.Company,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		Zip:       b.Zip,
		Country:   b.Country,
		Phone:     b.Phone,
	})
}

// HostedBuilder assembles hosted payment page requests.
type HostedBuilder struct {
	Customer              *CustomerBuilder
	ExistingCustomerEmail string
	Amount                string
	ReturnURL             string
	CancelURL             string
	DisplayMode           string
	IframeCommunicatorURL string
	CreateProfile         bool
}

func NewHostedBuilder() *HostedBuilder {
	return &HostedBuilder{
		Customer:    NewCustomerBuilder(),
		Amount:      "25.00",
		ReturnURL:   "https://shop.example.com/return",
		CancelURL:   "https://shop.example.com/cart",
		DisplayMode: payment.DisplayRedirect.String(),
	}
}

func (b *HostedBuilder) With(mutate func(*HostedBuilder)) *HostedBuilder {
	mutate(b)
	return b
}

func (b *HostedBuilder) BuildRequestDTO() reqdto.AcceptHostedTokenRequest {
	req := reqdto.AcceptHostedTokenRequest{
		ExistingCustomerEmail: b.ExistingCustomerEmail,
		Amount:                json.Number(b.Amount),
		ReturnURL:             b.ReturnURL,
		CancelURL:             b.CancelURL,
		DisplayMode:           b.DisplayMode,
		IframeCommunicatorURL: b.IframeCommunicatorURL,
		CreateProfile:         b.CreateProfile,
	}
	if b.Customer != nil {
		info := b.Customer.BuildRequestDTO()
		req.CustomerInfo = &info
	}
	return req
}

// BuildPending returns a correlation record as issued at issuedAt.
func (b *HostedBuilder) BuildPending(refID string, issuedAt time.Time, ttl time.Duration) (*correlation.Pending, error) {
	amount, err := payment.NewPositiveMoney(b.Amount)
	if err != nil {
		return nil, err
	}
	params := correlation.PendingParams{
		ExistingCustomerEmail: b.ExistingCustomerEmail,
		Amount:                amount,
		CreateProfile:         b.CreateProfile,
	}
	if b.Customer != nil {
		info, err := b.Customer.BuildDomain()
		if err != nil {
			return nil, err
		}
		params.CustomerInfo = info
	}
	return correlation.NewPending(refID, params, issuedAt, ttl)
}
