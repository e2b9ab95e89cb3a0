package user

import "errors"

var (
	// ErrEmailTaken reports signup with an already registered address.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials reports a failed signin without disclosing which
	// part of the credentials was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
