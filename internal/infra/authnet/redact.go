package authnet

import (
	"encoding/json"
)

const Redacted = "[REDACTED]"

// sensitiveKeys are replaced wherever they appear in a request or response body.
var sensitiveKeys = map[string]bool{
	"transactionKey": true,
	"dataValue":      true,
	"cardNumber":     true,
	"cardCode":       true,
	"signatureKey":   true,
}

// Exchange is the redacted request/response pair echoed in debug payloads.
type Exchange struct {
	Request  json.RawMessage `json:"request,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// Redact returns body with credentials replaced. Masked card numbers from the
// gateway ("XXXX1111") are already safe but are redacted with the rest.
// Bodies that are not JSON are replaced entirely.
func Redact(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		out, _ := json.Marshal(Redacted)
		return out
	}
	out, err := json.Marshal(redactValue(v, false))
	if err != nil {
		out, _ = json.Marshal(Redacted)
	}
	return out
}

func redactValue(v any, inMerchantAuth bool) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			switch {
			case sensitiveKeys[k]:
				t[k] = Redacted
			case inMerchantAuth && k == "name":
				t[k] = Redacted
			default:
				t[k] = redactValue(child, k == "merchantAuthentication")
			}
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = redactValue(child, inMerchantAuth)
		}
		return t
	default:
		return v
	}
}
