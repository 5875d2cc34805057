// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"altrion/internal/connect"
	"altrion/internal/loan"
	"altrion/internal/portfolio"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom tags on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("asset_type", validateAssetType)
	_ = v.RegisterValidation("loan_status", validateLoanStatus)
	_ = v.RegisterValidation("platform_id", validatePlatformID)
}

func validateAssetType(fl validator.FieldLevel) bool {
	return portfolio.AssetType(fl.Field().String()).Valid()
}

func validateLoanStatus(fl validator.FieldLevel) bool {
	return loan.Status(fl.Field().String()).Valid()
}

func validatePlatformID(fl validator.FieldLevel) bool {
	_, ok := connect.LookupPlatform(fl.Field().String())
	return ok
}
