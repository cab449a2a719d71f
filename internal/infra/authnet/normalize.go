package authnet

import (
	"bytes"
	"encoding/json"
	"strings"

	"accept-broker/internal/pkg/errs"
)

const (
	ResultOk    = "Ok"
	ResultError = "Error"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errUnrecognizedShape = errs.New("response has no messages element")
)

// NormalizedResponse is the single shape every gateway reply is reduced to.
// Nothing outside this file branches on the raw body layout.
type NormalizedResponse struct {
	ResultCode                 string
	Messages                   []Message
	RefID                      string
	Token                      string
	CustomerProfileID          string
	CustomerPaymentProfileIDs  []string
	CustomerShippingAddressIDs []string
	Profile                    *ProfileResponse
	TransactionResponse        *TransactionResponse
	// Raw is the compacted, unwrapped body.
	Raw      json.RawMessage
	Exchange Exchange
}

func (r *NormalizedResponse) OK() bool {
	return r.ResultCode == ResultOk
}

// FirstError picks the representative message: the first whose code is not
// informational (I-prefixed), then transaction-level errors, then anything.
func (r *NormalizedResponse) FirstError() Message {
	if tr := r.TransactionResponse; tr != nil {
		for _, e := range tr.Errors {
			if e.ErrorText != "" {
				return Message{Code: e.ErrorCode, Text: e.ErrorText}
			}
		}
	}
	for _, m := range r.Messages {
		if !strings.HasPrefix(m.Code, "I") {
			return m
		}
	}
	if len(r.Messages) > 0 {
		return r.Messages[0]
	}
	return Message{Text: "Payment gateway returned an unsuccessful result"}
}

// Normalize strips a leading BOM and unwraps a body nested one level under a
// "<name>Response" key, so flat and nested replies decode identically.
func Normalize(body []byte) (*NormalizedResponse, error) {
	body = bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), utf8BOM))
	if len(body) == 0 {
		return nil, errs.New("empty response body")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, errs.Wrap(err, "decode response envelope")
	}
	inner := body
	if _, flat := top["messages"]; !flat && len(top) == 1 {
		for key, v := range top {
			v = bytes.TrimSpace(v)
			if strings.HasSuffix(key, "Response") && len(v) > 0 && v[0] == '{' {
				inner = v
			}
		}
	}

	var w wireResponse
	if err := json.Unmarshal(inner, &w); err != nil {
		return nil, errs.Wrap(err, "decode response")
	}
	if w.Messages == nil || w.Messages.ResultCode == "" {
		return nil, errUnrecognizedShape
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, inner); err != nil {
		return nil, errs.Wrap(err, "compact response")
	}

	return &NormalizedResponse{
		ResultCode:                 w.Messages.ResultCode,
		Messages:                   []Message(w.Messages.Message),
		RefID:                      w.RefID,
		Token:                      w.Token,
		CustomerProfileID:          w.CustomerProfileID,
		CustomerPaymentProfileIDs:  []string(w.CustomerPaymentProfileIDList),
		CustomerShippingAddressIDs: []string(w.CustomerShippingAddressIDList),
		Profile:                    w.Profile,
		TransactionResponse:        w.TransactionResponse,
		Raw:                        compact.Bytes(),
	}, nil
}

// missingExpected reports the field an Ok response failed to carry, if any.
func (r *NormalizedResponse) missingExpected(exp Expectation) (string, bool) {
	switch exp {
	case ExpectToken:
		return "token", r.Token == ""
	case ExpectCustomerProfileID:
		return "customerProfileId", r.CustomerProfileID == ""
	case ExpectProfile:
		return "profile", r.Profile == nil
	case ExpectApprovedTransaction:
		return "transactionResponse", r.TransactionResponse == nil || r.TransactionResponse.TransID == ""
	default:
		return "", false
	}
}

// transactionAccepted is true for approved and held-for-review results.
func (r *NormalizedResponse) transactionAccepted() bool {
	tr := r.TransactionResponse
	return tr != nil && (tr.ResponseCode == "1" || tr.ResponseCode == "4")
}
