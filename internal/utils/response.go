// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// HandleServiceError maps a service-layer error onto an HTTP response.
func HandleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"validation failed", GetValidationErrors(validationErrors))
		return
	}

	if appErr := apperrors.As(err); appErr != nil {
		status := statusForCode(appErr.Code)
		if appErr.Details != nil {
			ErrorResponseWithDetails(c, status, string(appErr.Code), appErr.Message, appErr.Details)
			return
		}
		ErrorResponse(c, status, string(appErr.Code), appErr.Message)
		return
	}

	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidType,
		apperrors.CodeInvalidQuantity,
		apperrors.CodePriceRequired,
		apperrors.CodeInvalidPrice,
		apperrors.CodeInvalidDate,
		apperrors.CodeNotAPurchase:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInsufficientStock, apperrors.CodeDuplicate:
		return http.StatusConflict
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
