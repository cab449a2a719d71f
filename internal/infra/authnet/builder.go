package authnet

import (
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/pkg/errs"
)

const (
	defaultButtonText = "Pay"
	returnLinkText    = "Continue"
	cancelLinkText    = "Cancel"
)

type Credentials struct {
	APILoginID     string
	TransactionKey string
}

func (c Credentials) Configured() bool {
	return c.APILoginID != "" && c.TransactionKey != ""
}

func (c Credentials) auth() MerchantAuthentication {
	return MerchantAuthentication{Name: c.APILoginID, TransactionKey: c.TransactionKey}
}

// Builder turns broker parameters into gateway request envelopes. It performs
// no I/O.
type Builder struct {
	creds      Credentials
	env        Environment
	buttonText string
}

func NewBuilder(creds Credentials, env Environment, buttonText string) *Builder {
	if buttonText == "" {
		buttonText = defaultButtonText
	}
	return &Builder{creds: creds, env: env, buttonText: buttonText}
}

func (b *Builder) Environment() Environment {
	return b.env
}

type HostedPaymentParams struct {
	ReferenceID string
	Amount      payment.Money
	DisplayMode payment.DisplayMode
	Customer    customer.Info
	// CustomerProfileID references an existing gateway profile and replaces customer/billTo.
	CustomerProfileID     string
	CreateProfile         bool
	ReturnURL             string
	CancelURL             string
	IframeCommunicatorURL string
}

type HostedProfileParams struct {
	ReferenceID           string
	CustomerProfileID     string
	PageType              payment.PageType
	PaymentProfileID      string
	ShippingAddressID     string
	DisplayMode           payment.DisplayMode
	ReturnURL             string
	IframeCommunicatorURL string
}

type CreateProfileParams struct {
	MerchantCustomerID string
	Description        string
	Customer           customer.Info
}

type ChargeProfileParams struct {
	ReferenceID       string
	CustomerProfileID string
	PaymentProfileID  string
	Amount            payment.Money
}

type OpaqueTransactionParams struct {
	ReferenceID    string
	Amount         payment.Money
	DataDescriptor string
	DataValue      string
	Customer       customer.Info
}

func (b *Builder) BuildHostedPaymentRequest(p HostedPaymentParams) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if p.Amount.IsZero() {
		return GatewayRequest{}, errs.Validation("amount must be greater than zero")
	}
	if err := ValidateDisplay(p.DisplayMode, p.IframeCommunicatorURL); err != nil {
		return GatewayRequest{}, err
	}

	var s settingsBuilder
	s.addJSON("hostedPaymentButtonOptions", buttonOptions{Text: b.buttonText})

	if p.DisplayMode.Embedded() {
		comm, _ := communicatorURL(p.IframeCommunicatorURL)
		// The communicator page relays the outcome, so no return link is configured.
		s.addJSON("hostedPaymentReturnOptions", returnOptions{ShowReceipt: false})
		s.addJSON("hostedPaymentIFrameCommunicatorUrl", communicatorOptions{URL: comm})
	} else {
		opts := returnOptions{}
		if u, ok := returnURLWithReference(p.ReturnURL, p.ReferenceID); ok {
			opts.URL = u
			opts.URLText = returnLinkText
		}
		if u, ok := cancelURL(p.CancelURL); ok {
			opts.CancelURL = u
			opts.CancelURLText = cancelLinkText
		}
		// Without a return link the hosted receipt is the only way to finish.
		opts.ShowReceipt = opts.URL == ""
		s.addJSON("hostedPaymentReturnOptions", opts)
	}

	s.addJSON("hostedPaymentPaymentOptions", paymentOptions{CardCodeRequired: true, ShowCreditCard: true, ShowBankAccount: false})
	s.addJSON("hostedPaymentSecurityOptions", securityOptions{Captcha: false})
	s.addJSON("hostedPaymentBillingAddressOptions", billingAddressOptions{Show: p.CustomerProfileID == "", Required: false})
	s.addJSON("hostedPaymentCustomerOptions", customerOptions{
		ShowEmail:         p.CustomerProfileID == "",
		RequiredEmail:     false,
		AddPaymentProfile: p.CreateProfile || p.CustomerProfileID != "",
	})

	tx := TransactionRequest{
		TransactionType: transactionTypeAuthCapture,
		Amount:          p.Amount.String(),
	}
	if p.CustomerProfileID != "" {
		tx.Profile = &CustomerProfilePayment{CustomerProfileID: p.CustomerProfileID}
	} else {
		tx.Customer, tx.BillTo = customerFields(p.Customer)
		if p.CreateProfile && tx.Customer != nil && tx.Customer.Email != "" {
			tx.Profile = &CustomerProfilePayment{CreateProfile: true}
		}
	}
	if p.ReferenceID != "" {
		tx.Order = &Order{InvoiceNumber: p.ReferenceID}
	}

	return GatewayRequest{
		Operation: opHostedPaymentPage,
		Payload: hostedPaymentPageRequest{
			MerchantAuthentication: b.creds.auth(),
			RefID:                  p.ReferenceID,
			TransactionRequest:     tx,
			HostedPaymentSettings:  s.build(),
		},
		Expect:     ExpectToken,
		GatewayURL: b.env.Endpoints().PaymentPageURL,
	}, nil
}

func (b *Builder) BuildHostedProfileRequest(p HostedProfileParams) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if err := ValidateProfilePage(p.CustomerProfileID, p.PageType, p.PaymentProfileID, p.ShippingAddressID); err != nil {
		return GatewayRequest{}, err
	}
	if err := ValidateDisplay(p.DisplayMode, p.IframeCommunicatorURL); err != nil {
		return GatewayRequest{}, err
	}

	var s settingsBuilder
	if p.DisplayMode.Embedded() {
		comm, _ := communicatorURL(p.IframeCommunicatorURL)
		s.add("hostedProfileIFrameCommunicatorUrl", comm)
		s.addBool("hostedProfilePageBorderVisible", false)
	} else if u, ok := returnURLWithReference(p.ReturnURL, p.ReferenceID); ok {
		s.add("hostedProfileReturnUrl", u)
		s.add("hostedProfileReturnUrlText", returnLinkText)
	}
	if opt := manageOption(p.PageType); opt != "" {
		s.add("hostedProfileManageOptions", opt)
	}
	s.add("hostedProfileValidationMode", b.env.ValidationMode())
	s.add("hostedProfileBillingAddressOptions", "showBillingAddress")
	s.addBool("hostedProfileCardCodeRequired", true)

	return GatewayRequest{
		Operation: opHostedProfilePage,
		Payload: hostedProfilePageRequest{
			MerchantAuthentication: b.creds.auth(),
			RefID:                  p.ReferenceID,
			CustomerProfileID:      p.CustomerProfileID,
			HostedProfileSettings:  s.build(),
		},
		Expect:     ExpectToken,
		GatewayURL: b.env.ProfilePageURL(p.PageType),
	}, nil
}

func (b *Builder) BuildCreateCustomerProfileRequest(p CreateProfileParams) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if p.Customer.Email().IsZero() {
		return GatewayRequest{}, errs.Validation("customer email is required")
	}
	return GatewayRequest{
		Operation: opCreateCustomerProfile,
		Payload: createCustomerProfileRequest{
			MerchantAuthentication: b.creds.auth(),
			Profile: CustomerProfile{
				MerchantCustomerID: p.MerchantCustomerID,
				Description:        p.Description,
				Email:              p.Customer.Email().Value(),
			},
		},
		Expect: ExpectCustomerProfileID,
	}, nil
}

func (b *Builder) BuildGetCustomerProfileRequest(customerProfileID string) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if customerProfileID == "" {
		return GatewayRequest{}, errs.Validation("customerProfileId is required")
	}
	return GatewayRequest{
		Operation: opGetCustomerProfile,
		Payload: getCustomerProfileRequest{
			MerchantAuthentication: b.creds.auth(),
			CustomerProfileID:      customerProfileID,
		},
		Expect: ExpectProfile,
	}, nil
}

func (b *Builder) BuildChargeProfileRequest(p ChargeProfileParams) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if p.CustomerProfileID == "" || p.PaymentProfileID == "" {
		return GatewayRequest{}, errs.Validation("customerProfileId and customerPaymentProfileId are required")
	}
	if p.Amount.IsZero() {
		return GatewayRequest{}, errs.Validation("amount must be greater than zero")
	}
	return GatewayRequest{
		Operation: opCreateTransaction,
		Payload: createTransactionRequest{
			MerchantAuthentication: b.creds.auth(),
			RefID:                  p.ReferenceID,
			TransactionRequest: TransactionRequest{
				TransactionType: transactionTypeAuthCapture,
				Amount:          p.Amount.String(),
				Profile: &CustomerProfilePayment{
					CustomerProfileID: p.CustomerProfileID,
					PaymentProfile:    &PaymentProfileRef{PaymentProfileID: p.PaymentProfileID},
				},
			},
		},
		Expect: ExpectApprovedTransaction,
	}, nil
}

func (b *Builder) BuildOpaqueTransactionRequest(p OpaqueTransactionParams) (GatewayRequest, error) {
	if err := b.CheckCredentials(); err != nil {
		return GatewayRequest{}, err
	}
	if p.DataDescriptor == "" || p.DataValue == "" {
		return GatewayRequest{}, errs.Validation("opaqueData.dataDescriptor and opaqueData.dataValue are required")
	}
	if p.Amount.IsZero() {
		return GatewayRequest{}, errs.Validation("amount must be greater than zero")
	}
	tx := TransactionRequest{
		TransactionType: transactionTypeAuthCapture,
		Amount:          p.Amount.String(),
		Payment: &PaymentType{OpaqueData: &OpaqueData{
			DataDescriptor: p.DataDescriptor,
			DataValue:      p.DataValue,
		}},
	}
	tx.Customer, tx.BillTo = customerFields(p.Customer)
	return GatewayRequest{
		Operation: opCreateTransaction,
		Payload: createTransactionRequest{
			MerchantAuthentication: b.creds.auth(),
			RefID:                  p.ReferenceID,
			TransactionRequest:     tx,
		},
		Expect: ExpectApprovedTransaction,
	}, nil
}

// ValidateDisplay runs before a correlation record is written: embedded
// modes cannot relay the outcome without a communicator page.
func ValidateDisplay(mode payment.DisplayMode, iframeCommunicatorURL string) error {
	if !mode.IsValid() {
		return errs.Validation("invalid display mode")
	}
	if mode.Embedded() {
		if _, ok := communicatorURL(iframeCommunicatorURL); !ok {
			return errs.Validation("iframeCommunicatorUrl is required for lightbox and iframe display modes")
		}
	}
	return nil
}

// ValidateProfilePage runs before any gateway call; edit pages need the item they edit.
func ValidateProfilePage(customerProfileID string, pt payment.PageType, paymentProfileID, shippingAddressID string) error {
	if customerProfileID == "" {
		return errs.Validation("customerProfileId is required")
	}
	if !pt.IsValid() {
		return errs.Validation("invalid pageType")
	}
	if pt.RequiresPaymentProfile() && paymentProfileID == "" {
		return errs.Validation("paymentProfileId is required for pageType editPayment")
	}
	if pt.RequiresShippingAddress() && shippingAddressID == "" {
		return errs.Validation("shippingAddressId is required for pageType editShipping")
	}
	return nil
}

func manageOption(pt payment.PageType) string {
	switch pt {
	case payment.PageManage:
		return "showAll"
	case payment.PageEditPayment:
		return "showPayment"
	case payment.PageEditShipping:
		return "showShipping"
	default:
		return ""
	}
}

func customerFields(info customer.Info) (*CustomerData, *CustomerAddress) {
	if info.IsZero() {
		return nil, nil
	}
	var data *CustomerData
	if email := info.Email(); !email.IsZero() {
		data = &CustomerData{Type: "individual", Email: email.Value()}
	}
	a := info.Address()
	if a.IsEmpty() {
		return data, nil
	}
	return data, &CustomerAddress{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Company:     a.Company,
		Address:     a.Address,
		City:        a.City,
		State:       a.State,
		Zip:         a.Zip,
		Country:     a.Country,
		PhoneNumber: a.Phone,
	}
}

// CheckCredentials fails with errs.ErrCredentialsNotConfigured when the API login ID or transaction key is empty.
func (b *Builder) CheckCredentials() error {
	if !b.creds.Configured() {
		return errs.ErrCredentialsNotConfigured
	}
	return nil
}
