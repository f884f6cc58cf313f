package utils

import (
	"errors"
	"fmt"
	"net/http"

	"stayfinder/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NotFound"
	KindForbidden         ErrorKind = "Forbidden"
	KindInvalidRange      ErrorKind = "InvalidRange"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindInvalidInput      ErrorKind = "InvalidInput"
	KindConflict          ErrorKind = "Conflict"
	KindUnauthenticated   ErrorKind = "Unauthenticated"
	KindInternal          ErrorKind = "Internal"
)

// AppError is the single error type returned by the services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Status maps the kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidRange, KindInvalidTransition, KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) error      { return &AppError{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error     { return &AppError{Kind: KindForbidden, Message: msg} }
func InvalidRange(msg string) error  { return &AppError{Kind: KindInvalidRange, Message: msg} }
func InvalidInput(msg string) error  { return &AppError{Kind: KindInvalidInput, Message: msg} }
func Conflict(msg string) error      { return &AppError{Kind: KindConflict, Message: msg} }
func Unauthenticated(msg string) error {
	return &AppError{Kind: KindUnauthenticated, Message: msg}
}

func InvalidTransition(from, to string) error {
	return &AppError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("Invalid status transition from %s to %s", from, to),
	}
}

// Internal wraps a persistence or unexpected failure.
func Internal(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response. The detail is dropped in production.
func JSONError(c *gin.Context, status int, message string, details string) {
	if config.IsProduction() {
		details = ""
	}
	c.JSON(status, ErrorResponse{Message: message, Error: details})
}

// RespondError writes err using its kind. Internal errors carry the wrapped detail
// only outside production.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: "Internal Server Error", Err: err}
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		logger.Error(appErr.Message, zap.String("path", c.FullPath()), zap.Error(err))
		detail := ""
		if appErr.Err != nil {
			detail = appErr.Err.Error()
		}
		JSONError(c, status, appErr.Message, detail)
		return
	}

	logger.Debug(appErr.Message, zap.String("kind", string(appErr.Kind)), zap.String("path", c.FullPath()))
	c.JSON(status, ErrorResponse{Message: appErr.Message})
}
