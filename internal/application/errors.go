package application

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateIdentity   = errors.New("user already exists")
	ErrOwnerMismatch       = errors.New("forbidden access")
	ErrClassNotFound       = errors.New("class not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidAmount       = errors.New("invalid payment amount")
	ErrUpstreamGateway     = errors.New("payment processor unavailable")
	ErrUploadUnavailable   = errors.New("image storage not configured")
	ErrEmptyEnrollmentList = errors.New("payment must reference at least one class")
)
