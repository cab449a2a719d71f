package request

import (
	"encoding/json"

	"accept-broker/internal/usecase/commands"
)

// Debug, when set on any request, echoes the redacted gateway exchange.
type Debug struct {
	Debug bool `json:"debug"`
}

type CustomerInfoRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"max=50"`
	LastName  string `json:"lastName" binding:"max=50"`
	Company   string `json:"company" binding:"max=50"`
	Address   string `json:"address" binding:"max=60"`
	City      string `json:"city" binding:"max=40"`
	State     string `json:"state" binding:"max=40"`
	Zip       string `json:"zip" binding:"max=20"`
	Country   string `json:"country" binding:"max=60"`
	Phone     string `json:"phone" binding:"max=25"`
}

func (r *CustomerInfoRequest) ToInput() *commands.CustomerInput {
	if r == nil {
		return nil
	}
	return &commands.CustomerInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
		Phone:     r.Phone,
	}
}

type CreateCustomerProfileRequest struct {
	Debug
	CustomerInfo CustomerInfoRequest `json:"customerInfo" binding:"required"`
}

type GetCustomerProfileRequest struct {
	Debug
	CustomerProfileID string `json:"customerProfileId" binding:"required"`
}

type ChargeCustomerProfileRequest struct {
	Debug
	CustomerProfileID        string      `json:"customerProfileId" binding:"required"`
	CustomerPaymentProfileID string      `json:"customerPaymentProfileId"`
	Amount                   json.Number `json:"amount" binding:"required,amount"`
}

func (r *ChargeCustomerProfileRequest) ToInput() commands.ChargeProfileInput {
	return commands.ChargeProfileInput{
		CustomerProfileID:        r.CustomerProfileID,
		CustomerPaymentProfileID: r.CustomerPaymentProfileID,
		Amount:                   r.Amount.String(),
	}
}

// AcceptHostedTokenRequest leaves returnUrl and cancelUrl unchecked; the
// page is built without any link that is not an absolute http(s) URL.
type AcceptHostedTokenRequest struct {
	Debug
	CustomerInfo          *CustomerInfoRequest `json:"customerInfo" binding:"required_without=ExistingCustomerEmail"`
	ExistingCustomerEmail string               `json:"existingCustomerEmail" binding:"omitempty,email"`
	Amount                json.Number          `json:"amount" binding:"required,amount"`
	ReturnURL             string               `json:"returnUrl"`
	CancelURL             string               `json:"cancelUrl"`
	DisplayMode           string               `json:"displayMode" binding:"omitempty,displaymode"`
	IframeCommunicatorURL string               `json:"iframeCommunicatorUrl" binding:"omitempty,url"`
	CreateProfile         bool                 `json:"createProfile"`
}

func (r *AcceptHostedTokenRequest) ToInput() commands.HostedPaymentInput {
	return commands.HostedPaymentInput{
		Customer:              r.CustomerInfo.ToInput(),
		ExistingCustomerEmail: r.ExistingCustomerEmail,
		Amount:                r.Amount.String(),
		DisplayMode:           r.DisplayMode,
		ReturnURL:             r.ReturnURL,
		CancelURL:             r.CancelURL,
		IframeCommunicatorURL: r.IframeCommunicatorURL,
		CreateProfile:         r.CreateProfile,
	}
}

// HostedProfileTokenRequest has no cancelUrl: hosted profile pages only
// support a return link.
type HostedProfileTokenRequest struct {
	Debug
	CustomerProfileID     string `json:"customerProfileId" binding:"required"`
	PageType              string `json:"pageType" binding:"omitempty,pagetype"`
	PaymentProfileID      string `json:"paymentProfileId"`
	ShippingAddressID     string `json:"shippingAddressId"`
	ReturnURL             string `json:"returnUrl"`
	DisplayMode           string `json:"displayMode" binding:"omitempty,displaymode"`
	IframeCommunicatorURL string `json:"iframeCommunicatorUrl" binding:"omitempty,url"`
}

func (r *HostedProfileTokenRequest) ToInput() commands.HostedProfileInput {
	return commands.HostedProfileInput{
		CustomerProfileID:     r.CustomerProfileID,
		PageType:              r.PageType,
		PaymentProfileID:      r.PaymentProfileID,
		ShippingAddressID:     r.ShippingAddressID,
		DisplayMode:           r.DisplayMode,
		ReturnURL:             r.ReturnURL,
		IframeCommunicatorURL: r.IframeCommunicatorURL,
	}
}

type OpaqueDataRequest struct {
	DataDescriptor string `json:"dataDescriptor" binding:"required"`
	DataValue      string `json:"dataValue" binding:"required"`
}

type ProcessPaymentRequest struct {
	Debug
	OpaqueData   OpaqueDataRequest    `json:"opaqueData" binding:"required"`
	Amount       json.Number          `json:"amount" binding:"required,amount"`
	CustomerInfo *CustomerInfoRequest `json:"customerInfo"`
}

func (r *ProcessPaymentRequest) ToInput() commands.OpaquePaymentInput {
	return commands.OpaquePaymentInput{
		DataDescriptor: r.OpaqueData.DataDescriptor,
		DataValue:      r.OpaqueData.DataValue,
		Amount:         r.Amount.String(),
		Customer:       r.CustomerInfo.ToInput(),
	}
}
