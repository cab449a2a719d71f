package authnet

import (
	"bytes"
	"encoding/json"
)

// Request side. Field order follows the gateway schema; the JSON API maps to
// XML and rejects out-of-order elements.

type MerchantAuthentication struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

type Setting struct {
	SettingName  string `json:"settingName"`
	SettingValue string `json:"settingValue"`
}

type Settings struct {
	Setting []Setting `json:"setting"`
}

type TransactionRequest struct {
	TransactionType string                  `json:"transactionType"`
	Amount          string                  `json:"amount"`
	Payment         *PaymentType            `json:"payment,omitempty"`
	Profile         *CustomerProfilePayment `json:"profile,omitempty"`
	Order           *Order                  `json:"order,omitempty"`
	Customer        *CustomerData           `json:"customer,omitempty"`
	BillTo          *CustomerAddress        `json:"billTo,omitempty"`
}

type PaymentType struct {
	OpaqueData *OpaqueData `json:"opaqueData,omitempty"`
}

type OpaqueData struct {
	DataDescriptor string `json:"dataDescriptor"`
	DataValue      string `json:"dataValue"`
}

type CustomerProfilePayment struct {
	CreateProfile     bool               `json:"createProfile,omitempty"`
	CustomerProfileID string             `json:"customerProfileId,omitempty"`
	PaymentProfile    *PaymentProfileRef `json:"paymentProfile,omitempty"`
}

type PaymentProfileRef struct {
	PaymentProfileID string `json:"paymentProfileId"`
}

type Order struct {
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	Description   string `json:"description,omitempty"`
}

type CustomerData struct {
	Type  string `json:"type,omitempty"`
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

type CustomerAddress struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Company     string `json:"company,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type CustomerProfile struct {
	MerchantCustomerID string `json:"merchantCustomerId,omitempty"`
	Description        string `json:"description,omitempty"`
	Email              string `json:"email,omitempty"`
}

type hostedPaymentPageRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	TransactionRequest     TransactionRequest     `json:"transactionRequest"`
	HostedPaymentSettings  Settings               `json:"hostedPaymentSettings"`
}

type hostedProfilePageRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	CustomerProfileID      string                 `json:"customerProfileId"`
	HostedProfileSettings  Settings               `json:"hostedProfileSettings"`
}

type createCustomerProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	Profile                CustomerProfile        `json:"profile"`
}

type getCustomerProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	CustomerProfileID      string                 `json:"customerProfileId"`
}

type createTransactionRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	TransactionRequest     TransactionRequest     `json:"transactionRequest"`
}

// Response side.

type Message struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// List decodes either a JSON array or a single object; XML-derived payloads
// collapse one-element lists into objects.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var item T
	if err := json.Unmarshal(b, &item); err != nil {
		return err
	}
	*l = List[T]{item}
	return nil
}

type ProfileResponse struct {
	CustomerProfileID  string                `json:"customerProfileId"`
	MerchantCustomerID string                `json:"merchantCustomerId,omitempty"`
	Description        string                `json:"description,omitempty"`
	Email              string                `json:"email,omitempty"`
	PaymentProfiles    List[PaymentProfile]  `json:"paymentProfiles,omitempty"`
	ShipToList         List[ShippingAddress] `json:"shipToList,omitempty"`
}

type PaymentProfile struct {
	CustomerPaymentProfileID string           `json:"customerPaymentProfileId"`
	DefaultPaymentProfile    bool             `json:"defaultPaymentProfile,omitempty"`
	CustomerType             string           `json:"customerType,omitempty"`
	BillTo                   *CustomerAddress `json:"billTo,omitempty"`
	Payment                  *MaskedPayment   `json:"payment,omitempty"`
}

type MaskedPayment struct {
	CreditCard  *MaskedCard        `json:"creditCard,omitempty"`
	BankAccount *MaskedBankAccount `json:"bankAccount,omitempty"`
}

type MaskedCard struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardType       string `json:"cardType,omitempty"`
}

type MaskedBankAccount struct {
	AccountType   string `json:"accountType,omitempty"`
	RoutingNumber string `json:"routingNumber"`
	AccountNumber string `json:"accountNumber"`
	NameOnAccount string `json:"nameOnAccount,omitempty"`
}

type ShippingAddress struct {
	CustomerAddressID      string `json:"customerAddressId"`
	DefaultShippingAddress bool   `json:"defaultShippingAddress,omitempty"`
	CustomerAddress
}

type TransactionResponse struct {
	ResponseCode  string                    `json:"responseCode"`
	AuthCode      string                    `json:"authCode,omitempty"`
	AVSResultCode string                    `json:"avsResultCode,omitempty"`
	CVVResultCode string                    `json:"cvvResultCode,omitempty"`
	TransID       string                    `json:"transId"`
	RefTransID    string                    `json:"refTransID,omitempty"`
	AccountNumber string                    `json:"accountNumber,omitempty"`
	AccountType   string                    `json:"accountType,omitempty"`
	Messages      List[TransactionMessage]  `json:"messages,omitempty"`
	Errors        List[TransactionError]    `json:"errors,omitempty"`
	Profile       *TransactionProfileResult `json:"profile,omitempty"`
}

type TransactionMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type TransactionError struct {
	ErrorCode string `json:"errorCode"`
	ErrorText string `json:"errorText"`
}

type TransactionProfileResult struct {
	CustomerProfileID        string `json:"customerProfileId,omitempty"`
	CustomerPaymentProfileID string `json:"customerPaymentProfileId,omitempty"`
}

type wireMessages struct {
	ResultCode string        `json:"resultCode"`
	Message    List[Message] `json:"message"`
}

type wireResponse struct {
	RefID                         string               `json:"refId"`
	Messages                      *wireMessages        `json:"messages"`
	Token                         string               `json:"token"`
	CustomerProfileID             string               `json:"customerProfileId"`
	CustomerPaymentProfileIDList  List[string]         `json:"customerPaymentProfileIdList"`
	CustomerShippingAddressIDList List[string]         `json:"customerShippingAddressIdList"`
	Profile                       *ProfileResponse     `json:"profile"`
	TransactionResponse           *TransactionResponse `json:"transactionResponse"`
}
