package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("username or email already exists")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrAccessDenied    = errors.New("access denied")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
