package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a single pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

var validate = validator.New()

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: fe.Field(), Message: describe(fe)})
		}
	}

	// The database has to be reachable when recipes come from it
	if cfg.DatasetSource == DatasetSourceDatabase && cfg.DBDriver == "postgres" {
		if cfg.DBPassword == "" {
			if cfg.Environment == CI {
				errs = append(errs, ValidationError{Field: "DBPassword", Message: "DB_PASSWORD environment variable is required in CI environment"})
			} else {
				errs = append(errs, ValidationError{Field: "DBPassword", Message: "db_password secret or DB_PASSWORD is required"})
			}
		}
	}

	if cfg.Environment == Production && len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORSAllowedOrigins", Message: "at least one origin is required in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return fmt.Sprintf("is required when %s", strings.Replace(fe.Param(), " ", " is ", 1))
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "numeric":
		return fmt.Sprintf("must be numeric, got %q", fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
