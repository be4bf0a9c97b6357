package domain

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid_credentials")
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrPasswordMismatch     = errors.New("password_mismatch")
	ErrUserExists           = errors.New("user_exists")
	ErrUserNotFound         = errors.New("user_not_found")
	ErrInvalidSession       = errors.New("invalid_session")
	ErrSessionExpired       = errors.New("session_expired")
	ErrSessionRevoked       = errors.New("session_revoked")
	ErrMissingName          = errors.New("invalid_name")
	ErrMissingEmail         = errors.New("invalid_email")
)
