package authnet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"accept-broker/internal/pkg/errs"
)

const (
	SignatureHeader = "X-ANET-Signature"
	signaturePrefix = "sha512="
)

// Sign returns the header value the gateway sends for body: sha512=<UPPER HEX HMAC>.
func Sign(signatureKey string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(signatureKey))
	mac.Write(body)
	return signaturePrefix + strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// VerifySignature checks header against an HMAC-SHA512 of the raw body. Hex
// case is ignored; the comparison is constant time.
func VerifySignature(signatureKey string, body []byte, header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return errs.Mark(errs.New("missing "+SignatureHeader+" header"), errs.ErrSignatureVerificationFailed)
	}
	if len(header) < len(signaturePrefix) || !strings.EqualFold(header[:len(signaturePrefix)], signaturePrefix) {
		return errs.Mark(errs.New("unsupported signature scheme"), errs.ErrSignatureVerificationFailed)
	}
	got, err := hex.DecodeString(header[len(signaturePrefix):])
	if err != nil {
		return errs.Mark(errs.Wrap(err, "decode signature"), errs.ErrSignatureVerificationFailed)
	}
	mac := hmac.New(sha512.New, []byte(signatureKey))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return errs.Mark(errs.New("signature mismatch"), errs.ErrSignatureVerificationFailed)
	}
	return nil
}
