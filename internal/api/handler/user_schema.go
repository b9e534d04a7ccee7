package handler

import (
	"time"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

type createUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name"  validate:"required,min=1"`
	Role      string `json:"role"       validate:"required,oneof=administrator user"`
	Enabled   *bool  `json:"enabled"`
}

// updateUserRequest is a partial update. Email is absent: it is immutable
// after creation.
type updateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1"`
	Role      *string `json:"role"       validate:"omitempty,oneof=administrator user"`
	Enabled   *bool   `json:"enabled"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type userResponse struct {
	ID           string    `json:"id"`
	CreationDate time.Time `json:"creation_date"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:           u.ID,
		CreationDate: u.CreatedAt,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		Enabled:      u.Enabled,
	}
}
