package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/admission-service/internal/validator"
)

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSchoolNotFound   = errors.New("school not found")
	ErrAlreadyDecided   = errors.New("user has already been decided")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already registered")
	ErrSchoolExists     = errors.New("school already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationErrors re-exported so handlers only import services.
type ValidationErrors = validator.ValidationErrors

// PermissionError carries who tried what on which resource. Handlers map it
// to 403 with the detail fields.
type PermissionError struct {
	UserID   string
	Resource string
	ResID    string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s: %s",
		e.UserID, e.Action, e.Resource, e.ResID, e.Reason)
}

func NewPermissionError(userID, resID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		ResID:    resID,
		Action:   action,
		Reason:   reason,
	}
}
