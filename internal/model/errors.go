package model

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by the repositories.
var (
	ErrReportNotFound = errors.New("report not found")
)

// Machine-readable error codes carried on the error response body.
const (
	CodeMissingAnimalType  = "MISSING_ANIMAL_TYPE"
	CodeMissingLocation    = "MISSING_LOCATION"
	CodeMissingDescription = "MISSING_DESCRIPTION"
	CodeMissingPhone       = "MISSING_PHONE"
	CodeMissingEmail       = "MISSING_EMAIL"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidPhone       = "INVALID_PHONE"
	CodeInvalidUrgency     = "INVALID_URGENCY"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidLatitude    = "INVALID_LATITUDE"
	CodeInvalidLongitude   = "INVALID_LONGITUDE"
	CodeInvalidUserID      = "INVALID_USER_ID"
	CodeInvalidNgoID       = "INVALID_NGO_ID"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNgoNotFound        = "NGO_NOT_FOUND"
	CodeReportNotFound     = "REPORT_NOT_FOUND"
	CodeEmptyUpdate        = "EMPTY_UPDATE"
)

// AppError is a client-facing failure with a stable code so callers can
// branch on failure type without string-matching the message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusBadRequest}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusNotFound}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
