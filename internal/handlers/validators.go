package handlers

import (
	"fmt"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain validators used in DTO binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("cherry_role", validateRole); err != nil {
		return fmt.Errorf("failed to register cherry_role: %w", err)
	}
	if err := v.RegisterValidation("movement_type", validateMovementType); err != nil {
		return fmt.Errorf("failed to register movement_type: %w", err)
	}
	return nil
}

func validateRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).IsValid()
}

func validateMovementType(fl validator.FieldLevel) bool {
	return domain.MovementType(fl.Field().String()).IsValid()
}
