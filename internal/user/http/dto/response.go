package dto

import (
	"time"

	"github.com/allisson/orders/internal/user/domain"
)

// UserResponse represents the API response for a user
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Data   []UserResponse `json:"data"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// MapUserToResponse converts a domain User model to a UserResponse DTO
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUsersToListResponse converts a page of users.
func MapUsersToListResponse(users []*domain.User, offset, limit int) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return ListUsersResponse{Data: data, Offset: offset, Limit: limit}
}
