package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/shared/errors"
)

// APIResponse is the envelope of every JSON answer. Exactly one of Data and
// Error is meaningful, selected by Success.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse wraps a collection with its size.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// NullResponse answers 200 with explicit null data, used for expected absence
// such as a signed-in account without a profile row.
func NullResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    nil,
		"message": message,
	})
}

func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

func ListSuccessResponse(c *gin.Context, items interface{}, total int, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusOK, msg, ListResponse{Items: items, Total: total})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse answers with a bare message; the error type follows the status.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: string(typeForStatus(statusCode)), Message: message},
	})
}

// ErrorResponseWithError renders err. AppErrors keep their status and text;
// anything else becomes an opaque 500 and is attached to the gin context for
// the request logger.
func ErrorResponseWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr := errors.GetAppError(err)
	if appErr == nil {
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		return
	}
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

func typeForStatus(status int) errors.ErrorType {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return errors.ErrorTypeValidation
	case http.StatusUnauthorized:
		return errors.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return errors.ErrorTypeForbidden
	case http.StatusNotFound:
		return errors.ErrorTypeNotFound
	case http.StatusConflict:
		return errors.ErrorTypeConflict
	case http.StatusTooManyRequests:
		return errors.ErrorTypeRateLimited
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return errors.ErrorTypeBackend
	}
	if status >= 500 {
		return errors.ErrorTypeInternal
	}
	return errors.ErrorTypeBadRequest
}
