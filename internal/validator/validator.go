// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"stonkers/internal/numeric"
	"stonkers/internal/portfolio"
	"stonkers/internal/valuation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("ticker", validateTicker)
	_ = v.RegisterValidation("valuation_method", validateValuationMethod)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_direction", validateSortDirection)
}

func validateTicker(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	sym, ok := numeric.SanitizeStockSymbol(raw)
	return ok && sym == strings.ToUpper(strings.TrimSpace(raw))
}

func validateValuationMethod(fl validator.FieldLevel) bool {
	_, err := valuation.ParseMethod(fl.Field().String())
	return err == nil
}

func validateSortField(fl validator.FieldLevel) bool {
	_, err := portfolio.ParseSortField(fl.Field().String())
	return err == nil
}

func validateSortDirection(fl validator.FieldLevel) bool {
	_, err := portfolio.ParseSortDirection(fl.Field().String())
	return err == nil
}
