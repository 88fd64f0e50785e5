package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/orders/internal/database"
	apperrors "github.com/allisson/orders/internal/errors"
	"github.com/allisson/orders/internal/user/domain"
	appValidation "github.com/allisson/orders/internal/validation"
)

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(txManager database.TxManager, userRepo UserRepository) *UserUseCase {
	return &UserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
	}
}

// validateCreateUserInput validates the registration input using jellydator/validation
func validateCreateUserInput(input *domain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new user. E-mail addresses are unique after normalization.
func (uc *UserUseCase) Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	normalized := &domain.CreateUserInput{
		Name:  strings.TrimSpace(input.Name),
		Email: domain.NormalizeEmail(input.Email),
	}
	if err := validateCreateUserInput(normalized); err != nil {
		return nil, err
	}

	user := domain.NewUser(normalized.Name, normalized.Email)

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := uc.userRepo.GetByEmail(ctx, user.Email)
		switch {
		case err == nil:
			return domain.ErrUserAlreadyExists
		case !apperrors.Is(err, domain.ErrUserNotFound):
			return err
		}

		// Create user - repository will return domain errors
		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// List returns a page of users ordered by creation time
func (uc *UserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Delete removes a user. Orders that reference the user are kept.
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.userRepo.Delete(ctx, id)
}
