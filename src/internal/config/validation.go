package config

import (
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var (
	// Resource group and IP group names share the same character set.
	azureNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_().-]{1,90}$`)
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "azure_name":
		return "must be 1-90 characters of letters, digits, underscores, hyphens, periods or parentheses and must not end with a period"
	case "cron_spec":
		return "must be a valid cron expression (5 fields) or descriptor such as @hourly or @every 6h"
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "azure.tenant_id", "safety.minimum_acceptable_v4_networks")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("azure_name", validateAzureName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("cron_spec", validateCronSpec); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: Azure resource group / resource name
func validateAzureName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return azureNameRegexp.MatchString(name) && !strings.HasSuffix(name, ".")
}

// Custom validator: cron expression, empty means "use the default"
func validateCronSpec(fl validator.FieldLevel) bool {
	spec := fl.Field().String()
	if spec == "" {
		return true
	}
	_, err := cron.ParseStandard(spec)
	return err == nil
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}
