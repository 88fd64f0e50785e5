package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/orders/internal/errors"
	"github.com/allisson/orders/internal/user/domain"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr bool
	}{
		{name: "valid", req: CreateUserRequest{Name: "John", Email: "john@example.com"}},
		{name: "missing name", req: CreateUserRequest{Email: "john@example.com"}, wantErr: true},
		{name: "blank name", req: CreateUserRequest{Name: "  ", Email: "john@example.com"}, wantErr: true},
		{name: "missing email", req: CreateUserRequest{Name: "John"}, wantErr: true},
		{name: "padded email", req: CreateUserRequest{Name: "John", Email: " john@example.com"}, wantErr: true},
		{name: "malformed email", req: CreateUserRequest{Name: "John", Email: "john.example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMapUsersToListResponse(t *testing.T) {
	ts := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "John",
		Email:     "john@example.com",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	resp := MapUsersToListResponse([]*domain.User{user}, 0, 50)

	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, 50, resp.Limit)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, user.ID.String(), resp.Data[0].ID)
	assert.Equal(t, "john@example.com", resp.Data[0].Email)

	empty := MapUsersToListResponse(nil, 0, 50)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}
