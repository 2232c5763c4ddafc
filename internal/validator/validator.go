// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Korean exchange tickers are six digits.
var tickerRegex = regexp.MustCompile(`^\d{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_kind", validateAssetKind)
		_ = v.RegisterValidation("ticker", validateTicker)
	}
}

func validateAssetKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "ETF", "STOCK", "ALL":
		return true
	}
	return false
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}
