package queries

import "accept-broker/internal/infra/authnet"

// AuthConfigView is what a browser needs to load Accept.js or the hosted page.
type AuthConfigView struct {
	ClientKey   string          `json:"clientKey"`
	APILoginID  string          `json:"apiLoginId"`
	Environment EnvironmentView `json:"environment"`
}

type EnvironmentView struct {
	Name       string `json:"name"`
	APIURL     string `json:"apiUrl"`
	JSURL      string `json:"jsUrl"`
	GatewayURL string `json:"gatewayUrl"`
}

// ProfileView is a gateway customer profile with masked payment data.
type ProfileView struct {
	CustomerProfileID  string                `json:"customerProfileId"`
	MerchantCustomerID string                `json:"merchantCustomerId,omitempty"`
	Description        string                `json:"description,omitempty"`
	Email              string                `json:"email,omitempty"`
	PaymentProfiles    []PaymentProfileView  `json:"paymentProfiles"`
	ShippingAddresses  []ShippingAddressView `json:"shippingAddresses" copier:"ShipToList"`

	Exchange authnet.Exchange `json:"-" copier:"-"`
}

type PaymentProfileView struct {
	CustomerPaymentProfileID string       `json:"customerPaymentProfileId"`
	DefaultPaymentProfile    bool         `json:"defaultPaymentProfile"`
	CustomerType             string       `json:"customerType,omitempty"`
	BillTo                   *AddressView `json:"billTo,omitempty"`
	Payment                  *PaymentView `json:"payment,omitempty"`
}

type PaymentView struct {
	CreditCard  *CardView        `json:"creditCard,omitempty"`
	BankAccount *BankAccountView `json:"bankAccount,omitempty"`
}

type CardView struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardType       string `json:"cardType,omitempty"`
}

type BankAccountView struct {
	AccountType   string `json:"accountType,omitempty"`
	RoutingNumber string `json:"routingNumber"`
	AccountNumber string `json:"accountNumber"`
	NameOnAccount string `json:"nameOnAccount,omitempty"`
}

type AddressView struct {
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

type ShippingAddressView struct {
	CustomerAddressID      string `json:"customerAddressId"`
	DefaultShippingAddress bool   `json:"defaultShippingAddress"`
	FirstName              string `json:"firstName,omitempty"`
	LastName               string `json:"lastName,omitempty"`
	Company                string `json:"company,omitempty"`
	Address                string `json:"address,omitempty"`
	City                   string `json:"city,omitempty"`
	State                  string `json:"state,omitempty"`
	Zip                    string `json:"zip,omitempty"`
	Country                string `json:"country,omitempty"`
	PhoneNumber            string `json:"phoneNumber,omitempty"`
}
