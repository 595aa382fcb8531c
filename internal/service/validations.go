package service

import (
	"errors"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// Canonical YYYY-MM-DD calendar day
		validate.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(entity.DateLayout, fl.Field().String())
			return err == nil
		})
	})
}

// validateStruct joins per-field failures into one error the write path
// reports before anything touches the store.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		joined := error(errorvalues.ErrValidation)
		for _, fieldErr := range validationError {
			joined = errors.Join(joined, fieldErr)
		}
		return joined
	}
	return errors.New("validation unexpected error: " + err.Error())
}
