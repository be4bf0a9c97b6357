package domain

import (
	"context"
	"time"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AccountView, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*AccountView, error)
	AddUtilityAuthority(ctx context.Context, req UtilityAuthorityRequest) (*UtilityAuthorityResult, error)
	GetProfile(ctx context.Context, userID string) (*ProfileView, error)
	ListProfiles(ctx context.Context) ([]ProfileView, error)
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UtilityAuthorityRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	UtilityType string `json:"utility_type"`
	Address     string `json:"address"`
}

type UserView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProfileView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountView pairs a user with its profile.
type AccountView struct {
	User    UserView    `json:"user"`
	Profile ProfileView `json:"profile"`
}

type LoginResult struct {
	Account  AccountView
	RawToken string
}

// UtilityAuthorityResult echoes the generated credentials so the admin can
// hand them to the new authority.
type UtilityAuthorityResult struct {
	Account  AccountView
	Username string
	Password string
}
