// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Query model errors
	CodeQueryDecodeFailed Code = "QUERY_DECODE_FAILED"
	CodeQueryInvalid      Code = "QUERY_INVALID"
	CodeQueryNotPersisted Code = "QUERY_NOT_PERSISTED"

	// Action errors
	CodeActionNotAllowed    Code = "ACTION_NOT_ALLOWED"
	CodePersistenceDisabled Code = "PERSISTENCE_DISABLED"
	CodeDispatchFailed      Code = "DISPATCH_FAILED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// BadRequest - payload could not be read
	case CodeQueryDecodeFailed:
		return http.StatusBadRequest

	// UnprocessableEntity - payload read but a validation rule failed
	case CodeQueryInvalid:
		return http.StatusUnprocessableEntity

	// Conflict - the model is in a state that disallows the action
	case CodeQueryNotPersisted,
		CodeActionNotAllowed:
		return http.StatusConflict

	// NotFound - the action surface is switched off
	case CodePersistenceDisabled:
		return http.StatusNotFound

	// BadGateway - the downstream collaborator failed
	case CodeDispatchFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
