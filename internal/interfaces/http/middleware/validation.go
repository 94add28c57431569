package middleware

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/courierlog/backend/internal/domain/shared"
)

// SetupValidator configures gin's binding validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		_ = v.RegisterValidation("dateonly", validateDateOnly)
	}
}

// validateDateOnly accepts calendar dates in YYYY-MM-DD form
func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(shared.DateLayout, fl.Field().String())
	return err == nil
}

// BindingErrorMessage flattens a binding failure into the single message the
// error contract carries. Date fields report the rejected value; any other
// validation failure collapses to requiredMsg, and non-validator errors
// (malformed JSON and the like) stay generic.
func BindingErrorMessage(err error, requiredMsg string) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}
	for _, e := range validationErrors {
		if e.Tag() == "dateonly" {
			return fmt.Sprintf("Invalid date, expected YYYY-MM-DD: %v", e.Value())
		}
	}
	return requiredMsg
}
