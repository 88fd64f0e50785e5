package commands

import (
	"context"
	"fmt"
	"log/slog"

	userDomain "github.com/allisson/orders/internal/user/domain"
	userUseCase "github.com/allisson/orders/internal/user/usecase"
)

// RunCreateUser registers a user in the directory and prints its id in text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	name string,
	email string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("email", email))

	user, err := useCase.Create(ctx, &userDomain.CreateUserInput{Name: name, Email: email})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"id":    user.ID.String(),
			"name":  user.Name,
			"email": user.Email,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "User created successfully!\n\n")
		_, _ = fmt.Fprintf(io.Writer, "ID:    %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Name:  %s\n", user.Name)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}
