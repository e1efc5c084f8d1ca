package validation

import (
	"errors"
	"math"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom rules role payloads use on gin's binding
// engine. Call once at startup before routes are registered.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not *validator.Validate")
	}
	if err := v.RegisterValidation("decimals2", hasAtMostTwoDecimals); err != nil {
		return err
	}
	return v.RegisterValidation("iso8601", isISO8601)
}

// hasAtMostTwoDecimals accepts numbers with at most 2 decimal digits.
func hasAtMostTwoDecimals(fl validator.FieldLevel) bool {
	scaled := fl.Field().Float() * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

func isISO8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}
