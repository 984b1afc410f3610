package admin

import "errors"

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionRevoked     = errors.New("session has been closed")
)
