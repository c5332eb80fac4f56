package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	sections := []struct {
		name  string
		value interface{}
	}{
		{"azure", &c.Azure},
		{"source", &c.Source},
		{"safety", &c.Safety},
		{"general", &c.General},
	}

	for _, section := range sections {
		if err := validate.Struct(section.value); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, section.name)...)
		}
	}

	validationErrors = append(validationErrors, c.validateEndpoints()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateEndpoints checks that credentials are never sent over plain HTTP to a remote host.
func (c *Config) validateEndpoints() ValidationErrors {
	var validationErrors ValidationErrors

	endpoints := []struct {
		path  string
		value string
	}{
		{"azure.authority_host", c.Azure.AuthorityHost},
		{"azure.management_endpoint", c.Azure.ManagementEndpoint},
	}

	for _, ep := range endpoints {
		if ep.value == "" {
			continue
		}
		u, err := url.Parse(ep.value)
		if err != nil {
			continue
		}
		if u.Scheme == "https" {
			continue
		}
		if u.Scheme == "http" && isLoopbackHost(u.Hostname()) {
			continue
		}
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: ep.path,
			Message:   fmt.Sprintf("must use https (plain http is only allowed for loopback hosts), got %q", ep.value),
		})
	}

	return validationErrors
}

func isLoopbackHost(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
