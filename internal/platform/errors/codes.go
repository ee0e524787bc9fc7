// Package errors provides structured error handling with machine-readable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Task errors
	CodeTaskTitleEmpty        Code = "TASK_TITLE_EMPTY"
	CodeTaskProjectIDEmpty    Code = "TASK_PROJECT_ID_EMPTY"
	CodeTaskUserIDEmpty       Code = "TASK_USER_ID_EMPTY"
	CodeTaskInvalidPriority   Code = "TASK_INVALID_PRIORITY"
	CodeTaskInvalidStatus     Code = "TASK_INVALID_STATUS"
	CodeTaskCapacityExceeded  Code = "TASK_CAPACITY_EXCEEDED"
	CodeTaskPriorityImmutable Code = "TASK_PRIORITY_IMMUTABLE"

	// Comment errors
	CodeCommentBodyEmpty   Code = "COMMENT_BODY_EMPTY"
	CodeCommentAuthorEmpty Code = "COMMENT_AUTHOR_EMPTY"

	// Project errors
	CodeProjectNameEmpty   Code = "PROJECT_NAME_EMPTY"
	CodeProjectUserIDEmpty Code = "PROJECT_USER_ID_EMPTY"

	// Auth errors
	CodeAuthTokenInvalid Code = "AUTH_TOKEN_INVALID"
	CodeAuthRoleDenied   Code = "AUTH_ROLE_DENIED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeTaskTitleEmpty,
		CodeTaskProjectIDEmpty,
		CodeTaskUserIDEmpty,
		CodeTaskInvalidPriority,
		CodeTaskInvalidStatus,
		CodeTaskPriorityImmutable,
		CodeCommentBodyEmpty,
		CodeCommentAuthorEmpty,
		CodeProjectNameEmpty,
		CodeProjectUserIDEmpty:
		return http.StatusBadRequest

	// Conflict - state doesn't allow operation
	case CodeTaskCapacityExceeded:
		return http.StatusConflict

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	case CodeAuthTokenInvalid:
		return http.StatusUnauthorized

	case CodeAuthRoleDenied:
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}
