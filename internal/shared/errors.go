package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a bearer token that failed verification.
	// Malformed, expired and badly signed tokens all collapse into this one.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailTaken occurs when registering an email that already exists.
	ErrEmailTaken = errors.New("email already taken")
	// ErrAlreadyParticipating occurs when joining a session roster twice.
	ErrAlreadyParticipating = errors.New("already participating")
	// ErrNotParticipating occurs when leaving a session never joined.
	ErrNotParticipating = errors.New("not participating")
)
