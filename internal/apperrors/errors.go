package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found within
// the caller's organization scope.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation was attempted against an entity in
// an incompatible lifecycle state (e.g. posting an already-posted entry).
var ErrConflict = errors.New("operation conflicts with current state")

// ErrForbidden indicates the acting user lacks the required role for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
