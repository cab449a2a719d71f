package authnet

import (
	"fmt"

	"accept-broker/internal/pkg/errs"
)

// GatewayError is the only error shape the client returns for a failed
// exchange: rejected requests, malformed bodies and transport failures alike.
type GatewayError struct {
	Operation  string
	Code       string
	Text       string
	ParseError bool
	Timeout    bool
	Exchange   Exchange
	// Response is set when the gateway replied with a well-formed rejection.
	Response *NormalizedResponse
	cause    error
}

func (e *GatewayError) Error() string {
	switch {
	case e.ParseError:
		return fmt.Sprintf("%s: unparseable gateway response: %s", e.Operation, e.Text)
	case e.Code != "":
		return fmt.Sprintf("%s: %s %s", e.Operation, e.Code, e.Text)
	default:
		return fmt.Sprintf("%s: %s", e.Operation, e.Text)
	}
}

func (e *GatewayError) Unwrap() error {
	return e.cause
}

// Is lets errors.Is(err, errs.ErrGateway) classify every gateway failure.
func (e *GatewayError) Is(target error) bool {
	return target == errs.ErrGateway
}

// Message is the caller-facing text, passed through from the provider.
func (e *GatewayError) Message() string {
	if e.Text != "" {
		return e.Text
	}
	return "Payment gateway request failed"
}
