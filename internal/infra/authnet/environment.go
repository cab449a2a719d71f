package authnet

import (
	"strings"

	"accept-broker/internal/domain/payment"
	"accept-broker/internal/pkg/errs"
)

var ErrUnknownEnvironment = errs.New("unknown authorize.net environment")

type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

// Endpoints are the public URLs a caller needs for one environment.
type Endpoints struct {
	APIURL         string
	JSURL          string
	AcceptUIURL    string
	PaymentPageURL string
	ProfileBaseURL string
}

var endpoints = map[Environment]Endpoints{
	Sandbox: {
		APIURL:         "https://apitest.authorize.net/xml/v1/request.api",
		JSURL:          "https://jstest.authorize.net/v1/Accept.js",
		AcceptUIURL:    "https://jstest.authorize.net/v3/AcceptUI.js",
		PaymentPageURL: "https://test.authorize.net/payment/payment",
		ProfileBaseURL: "https://test.authorize.net/customer/",
	},
	Production: {
		APIURL:         "https://api.authorize.net/xml/v1/request.api",
		JSURL:          "https://js.authorize.net/v1/Accept.js",
		AcceptUIURL:    "https://js.authorize.net/v3/AcceptUI.js",
		PaymentPageURL: "https://accept.authorize.net/payment/payment",
		ProfileBaseURL: "https://accept.authorize.net/customer/",
	},
}

// profilePaths maps every page type to its hosted path. The edit pages reuse
// the manage view; the item is selected by the ID posted with the token.
var profilePaths = map[payment.PageType]string{
	payment.PageManage:       "manage",
	payment.PageAddPayment:   "addPayment",
	payment.PageAddShipping:  "addShipping",
	payment.PageEditPayment:  "manage",
	payment.PageEditShipping: "manage",
}

// ParseEnvironment treats an empty value as sandbox.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case "", Sandbox:
		return Sandbox, nil
	case Production:
		return Production, nil
	default:
		return "", errs.Wrap(ErrUnknownEnvironment, s)
	}
}

func (e Environment) String() string {
	return string(e)
}

func (e Environment) Endpoints() Endpoints {
	if ep, ok := endpoints[e]; ok {
		return ep
	}
	return endpoints[Sandbox]
}

func (e Environment) ProfilePageURL(pt payment.PageType) string {
	path, ok := profilePaths[pt]
	if !ok {
		path = profilePaths[payment.PageManage]
	}
	return e.Endpoints().ProfileBaseURL + path
}

// ValidationMode is the hostedProfileValidationMode for this environment.
func (e Environment) ValidationMode() string {
	if e == Production {
		return "liveMode"
	}
	return "testMode"
}
