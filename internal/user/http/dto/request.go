// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/orders/internal/user/domain"
	appValidation "github.com/allisson/orders/internal/validation"
)

// CreateUserRequest represents the API request for user registration
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate validates the CreateUserRequest using the jellydator/validation library
func (r *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request into the use case input.
func (r *CreateUserRequest) ToInput() *domain.CreateUserInput {
	return &domain.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}
