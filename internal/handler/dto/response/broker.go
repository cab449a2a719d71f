package response

import (
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/usecase/commands"
	"accept-broker/internal/usecase/queries"
)

type AuthConfigResponse struct {
	Success bool `json:"success"`
	*queries.AuthConfigView
}

func FromAuthConfigView(v *queries.AuthConfigView) *AuthConfigResponse {
	return &AuthConfigResponse{Success: true, AuthConfigView: v}
}

type CreateCustomerProfileResponse struct {
	Success           bool              `json:"success"`
	CustomerProfileID string            `json:"customerProfileId"`
	Existing          bool              `json:"existing,omitempty"`
	Debug             *authnet.Exchange `json:"debug,omitempty"`
}

func FromCreateProfileResult(r *commands.CreateProfileResult, debug bool) *CreateCustomerProfileResponse {
	return &CreateCustomerProfileResponse{
		Success:           true,
		CustomerProfileID: r.CustomerProfileID,
		Existing:          r.Existing,
		Debug:             debugEcho(debug, r.Exchange),
	}
}

type CustomerProfileResponse struct {
	Success bool                 `json:"success"`
	Profile *queries.ProfileView `json:"profile"`
	Debug   *authnet.Exchange    `json:"debug,omitempty"`
}

func FromProfileView(v *queries.ProfileView, debug bool) *CustomerProfileResponse {
	return &CustomerProfileResponse{
		Success: true,
		Profile: v,
		Debug:   debugEcho(debug, v.Exchange),
	}
}

type HostedTokenResponse struct {
	Success           bool              `json:"success"`
	Token             string            `json:"token"`
	GatewayURL        string            `json:"gatewayUrl"`
	ReferenceID       string            `json:"referenceId"`
	DisplayMode       string            `json:"displayMode"`
	PageType          string            `json:"pageType,omitempty"`
	CustomerProfileID string            `json:"customerProfileId,omitempty"`
	PaymentProfileID  string            `json:"paymentProfileId,omitempty"`
	ShippingAddressID string            `json:"shippingAddressId,omitempty"`
	Debug             *authnet.Exchange `json:"debug,omitempty"`
}

func FromHostedTokenResult(r *commands.HostedTokenResult, debug bool) *HostedTokenResponse {
	return &HostedTokenResponse{
		Success:           true,
		Token:             r.Token,
		GatewayURL:        r.GatewayURL,
		ReferenceID:       r.ReferenceID,
		DisplayMode:       r.DisplayMode.String(),
		PageType:          r.PageType.String(),
		CustomerProfileID: r.CustomerProfileID,
		PaymentProfileID:  r.PaymentProfileID,
		ShippingAddressID: r.ShippingAddressID,
		Debug:             debugEcho(debug, r.Exchange),
	}
}

type ChargeResponse struct {
	Success                  bool              `json:"success"`
	TransactionID            string            `json:"transactionId"`
	ReferenceID              string            `json:"referenceId,omitempty"`
	ResponseCode             string            `json:"responseCode"`
	AuthCode                 string            `json:"authCode"`
	AVSResultCode            string            `json:"avsResultCode,omitempty"`
	CVVResultCode            string            `json:"cvvResultCode,omitempty"`
	AccountNumber            string            `json:"accountNumber"`
	AccountType              string            `json:"accountType"`
	Amount                   string            `json:"amount"`
	CustomerProfileID        string            `json:"customerProfileId,omitempty"`
	CustomerPaymentProfileID string            `json:"customerPaymentProfileId,omitempty"`
	Message                  string            `json:"message,omitempty"`
	Debug                    *authnet.Exchange `json:"debug,omitempty"`
}

func FromChargeResult(r *commands.ChargeResult, debug bool) *ChargeResponse {
	return &ChargeResponse{
		Success:                  true,
		TransactionID:            r.TransactionID,
		ReferenceID:              r.ReferenceID,
		ResponseCode:             r.ResponseCode,
		AuthCode:                 r.AuthCode,
		AVSResultCode:            r.AVSResultCode,
		CVVResultCode:            r.CVVResultCode,
		AccountNumber:            r.AccountNumber,
		AccountType:              r.AccountType,
		Amount:                   r.Amount.String(),
		CustomerProfileID:        r.CustomerProfileID,
		CustomerPaymentProfileID: r.CustomerPaymentProfileID,
		Message:                  r.Message,
		Debug:                    debugEcho(debug, r.Exchange),
	}
}

type WebhookResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notificationId"`
	EventType      string `json:"eventType"`
	Processed      bool   `json:"processed"`
	Duplicate      bool   `json:"duplicate,omitempty"`
}

func FromWebhookResult(r *commands.WebhookResult) *WebhookResponse {
	return &WebhookResponse{
		Success:        true,
		NotificationID: r.NotificationID,
		EventType:      r.EventType,
		Processed:      r.Processed,
		Duplicate:      r.Duplicate,
	}
}

func debugEcho(debug bool, ex authnet.Exchange) *authnet.Exchange {
	if !debug {
		return nil
	}
	return &ex
}
