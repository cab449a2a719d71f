package commands

import (
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
)

// CustomerInput is the caller-supplied customer/billing snapshot.
type CustomerInput struct {
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

func (c CustomerInput) toInfo() (customer.Info, error) {
	info, err := customer.NewInfo(c.Email, customer.Address{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Zip:       c.Zip,
		Country:   c.Country,
		Phone:     c.Phone,
	})
	if err != nil {
		return customer.Info{}, invalid(err)
	}
	return info, nil
}

type HostedPaymentInput struct {
	Customer              *CustomerInput
	ExistingCustomerEmail string
	Amount                string
	DisplayMode           string
	ReturnURL             string
	CancelURL             string
	IframeCommunicatorURL string
	CreateProfile         bool
}

type HostedProfileInput struct {
	CustomerProfileID     string
	PageType              string
	PaymentProfileID      string
	ShippingAddressID     string
	DisplayMode           string
	ReturnURL             string
	IframeCommunicatorURL string
}

type HostedTokenResult struct {
	Token             string
	GatewayURL        string
	ReferenceID       string
	DisplayMode       payment.DisplayMode
	PageType          payment.PageType
	CustomerProfileID string
	PaymentProfileID  string
	ShippingAddressID string
	Exchange          authnet.Exchange
}

type CreateProfileResult struct {
	CustomerProfileID string
	// Existing is set when the gateway already held a profile for this customer.
	Existing bool
	Exchange authnet.Exchange
}

type ChargeProfileInput struct {
	CustomerProfileID        string
	CustomerPaymentProfileID string
	Amount                   string
}

type OpaquePaymentInput struct {
	DataDescriptor string
	DataValue      string
	Amount         string
	Customer       *CustomerInput
}

type ChargeResult struct {
	TransactionID            string
	ReferenceID              string
	ResponseCode             string
	AuthCode                 string
	AVSResultCode            string
	CVVResultCode            string
	AccountNumber            string
	AccountType              string
	Amount                   payment.Money
	CustomerProfileID        string
	CustomerPaymentProfileID string
	Message                  string
	Exchange                 authnet.Exchange
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func parseAmount(s string) (payment.Money, error) {
	m, err := payment.NewPositiveMoney(s)
	if err != nil {
		return payment.Money{}, invalid(errs.Wrap(err, "amount"))
	}
	return m, nil
}
