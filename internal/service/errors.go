package service

import "errors"

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("user not found")
	ErrAssistantMissing   = errors.New("assistant account not configured")
)
