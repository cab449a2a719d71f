package validation

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"

	"accept-broker/internal/domain/payment"
	"accept-broker/internal/pkg/errs"
)

var registerOnce sync.Once

// Register installs the broker's custom tags on gin's validator engine.
// Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validatorv10.Validate)
		if !ok {
			err = errs.New("gin validator engine is not go-playground/validator")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

func RegisterOn(v *validatorv10.Validate) error {
	for tag, fn := range map[string]validatorv10.Func{
		"displaymode": validDisplayMode,
		"pagetype":    validPageType,
		"amount":      validAmount,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errs.Wrapf(err, "register %s validator", tag)
		}
	}
	return nil
}

func validDisplayMode(fl validatorv10.FieldLevel) bool {
	return payment.DisplayMode(fl.Field().String()).IsValid()
}

func validPageType(fl validatorv10.FieldLevel) bool {
	return payment.PageType(fl.Field().String()).IsValid()
}

// validAmount accepts a positive decimal with at most two fraction digits.
func validAmount(fl validatorv10.FieldLevel) bool {
	_, err := payment.NewPositiveMoney(fl.Field().String())
	return err == nil
}
