package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
)

// Error codes carried in the "code" field of every error body.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeGateway            = "GATEWAY_ERROR"
	CodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	CodeSignature          = "SIGNATURE_VERIFICATION_FAILED"
	CodeCredentials        = "CREDENTIALS_NOT_CONFIGURED"
	CodeInternal           = "INTERNAL_ERROR"
	internalServerErrorMsg = "Internal server error"
)

type Response struct {
	Status  int               `json:"-"`
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details any               `json:"details,omitempty"`
	Debug   *authnet.Exchange `json:"debug,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, details any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	abort(c, err, Response{Status: status, Error: msg, Code: code, Details: details})
}

// Abort classifies err against the errs taxonomy. With debug set, a gateway
// error carries its redacted request/response pair.
func Abort(c *gin.Context, err error, debug bool) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}
	resp := Classify(err)
	if debug {
		var gerr *authnet.GatewayError
		if errs.As(err, &gerr) {
			ex := gerr.Exchange
			resp.Debug = &ex
		}
	}
	abort(c, err, resp)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}

func Classify(err error) Response {
	var gerr *authnet.GatewayError
	switch {
	case errs.As(err, &gerr):
		details := gin.H{}
		if gerr.Code != "" {
			details["gatewayCode"] = gerr.Code
		}
		if gerr.ParseError {
			details["parseError"] = true
		}
		if gerr.Timeout {
			details["timeout"] = true
		}
		resp := Response{Status: http.StatusBadRequest, Error: gerr.Message(), Code: CodeGateway}
		if len(details) > 0 {
			resp.Details = details
		}
		return resp
	case errs.Is(err, errs.ErrValidation):
		return Response{Status: http.StatusBadRequest, Error: validationMessage(err), Code: CodeValidation}
	case errs.Is(err, errs.ErrCustomerNotFound):
		return Response{Status: http.StatusNotFound, Error: "Customer not found", Code: CodeCustomerNotFound}
	case errs.Is(err, errs.ErrSignatureVerificationFailed):
		return Response{Status: http.StatusUnauthorized, Error: "Invalid webhook signature", Code: CodeSignature}
	case errs.Is(err, errs.ErrCredentialsNotConfigured):
		return Response{Status: http.StatusInternalServerError, Error: "Payment gateway credentials are not configured", Code: CodeCredentials}
	default:
		return Internal()
	}
}

func Internal() Response {
	return Response{Status: http.StatusInternalServerError, Error: internalServerErrorMsg, Code: CodeInternal}
}

// validationMessage is the outermost message of the chain; domain and
// use-case validation errors are written for callers.
func validationMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Invalid request"
}
