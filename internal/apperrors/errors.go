// internal/apperrors/errors.go
package apperrors

import "errors"

// Code is the machine-readable kind of a domain error. Handlers map codes
// to HTTP statuses; clients branch on them.
type Code string

const (
	CodeInvalidType       Code = "INVALID_TYPE"
	CodeInvalidQuantity   Code = "INVALID_QUANTITY"
	CodePriceRequired     Code = "PRICE_REQUIRED"
	CodeInvalidPrice      Code = "INVALID_PRICE"
	CodeInvalidDate       Code = "INVALID_DATE"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeNotFound          Code = "NOT_FOUND"
	CodeNotAPurchase      Code = "NOT_A_PURCHASE"
	CodeDuplicate         Code = "DUPLICATE"
	CodeUnauthorized      Code = "UNAUTHORIZED"
)

type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewWithDetails(code Code, message string, details map[string]interface{}) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// As unwraps err into an *Error, or nil if it is not one.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	if appErr := As(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}
