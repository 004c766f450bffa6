package auth

import (
	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
)

// RegisterRequest captures the fields required to create an account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterWithProfileRequest creates the account and fills the profile in the
// same transaction.
type RegisterWithProfileRequest struct {
	RegisterRequest
	Profile profiles.UpdateProfileRequest `json:"profile"`
}

// RegisterResponse returns the created account and its profile.
type RegisterResponse struct {
	User    *users.UserDTO       `json:"user"`
	Profile *profiles.ProfileDTO `json:"profile"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}
