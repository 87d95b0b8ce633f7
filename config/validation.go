package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct tags first and then the rules spanning several sections.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if cfg.Files.Store == StoreBadger && cfg.Files.Directory == "" {
		// options may come from the environment as strings
		if inMemory, _ := strconv.ParseBool(fmt.Sprint(cfg.Files.Options["in_memory"])); !inMemory {
			return fmt.Errorf("files: the badger store requires a directory")
		}
	}

	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}

	return err
}
