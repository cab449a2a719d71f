package authnet

import "encoding/json"

// Expectation names the field an Ok response must carry for the call to count as successful.
type Expectation int

const (
	ExpectNothing Expectation = iota
	ExpectToken
	ExpectCustomerProfileID
	ExpectProfile
	ExpectApprovedTransaction
)

// GatewayRequest is a fully built request envelope, e.g.
// {"getHostedPaymentPageRequest": {...}}.
type GatewayRequest struct {
	Operation string
	Payload   any
	Expect    Expectation
	// GatewayURL is where the caller posts the issued token, for hosted page requests.
	GatewayURL string
}

func (r GatewayRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{r.Operation: r.Payload})
}

const (
	opHostedPaymentPage     = "getHostedPaymentPageRequest"
	opHostedProfilePage     = "getHostedProfilePageRequest"
	opCreateCustomerProfile = "createCustomerProfileRequest"
	opGetCustomerProfile    = "getCustomerProfileRequest"
	opCreateTransaction     = "createTransactionRequest"

	transactionTypeAuthCapture = "authCaptureTransaction"
)
