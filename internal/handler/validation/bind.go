package validation

import (
	"fmt"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"accept-broker/internal/pkg/errs"
)

// BindJSON binds the body into out. Failures are marked errs.ErrValidation;
// details maps offending fields to messages and is nil when none apply.
func BindJSON(c *gin.Context, out any) (details any, err error) {
	if err = c.ShouldBindJSON(out); err == nil {
		return nil, nil
	}
	if fields := FieldErrors(err); len(fields) > 0 {
		details = fields
	}
	return details, errs.Mark(errs.Wrap(err, "invalid request body"), errs.ErrValidation)
}

func FieldErrors(err error) map[string]string {
	var ve validatorv10.ValidationErrors
	if !errs.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is absent", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be an absolute URL"
	case "displaymode":
		return "must be one of redirect, lightbox, iframe"
	case "pagetype":
		return "must be one of manage, addPayment, editPayment, addShipping, editShipping"
	case "amount":
		return "must be a positive amount with at most two decimals"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
