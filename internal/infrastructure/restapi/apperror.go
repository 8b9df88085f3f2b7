package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_tracker/internal/app/service"
	"wallet_tracker/internal/infrastructure/backendclient"
)

// AppError is a structured error that maps to an HTTP response.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func errValidation(message string) *AppError {
	return newAppError("REQ_001", message, http.StatusBadRequest, nil)
}

func errNotFound(message string) *AppError {
	return newAppError("REQ_002", message, http.StatusNotFound, nil)
}

// toAppError maps service and backend errors onto API error codes.
func toAppError(err error) *AppError {
	var appErr *AppError
	var apiErr *backendclient.APIError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, service.ErrInvalidCredentials):
		return newAppError("AUTH_001", "Invalid credentials", http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, backendclient.ErrUnauthorized):
		return newAppError("AUTH_002", "Not authenticated", http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrInvalidAddress):
		return newAppError("WAL_001", "Invalid wallet address", http.StatusBadRequest, err)
	case errors.Is(err, service.ErrWalletExists):
		return newAppError("WAL_002", "Wallet already tracked", http.StatusConflict, err)
	case errors.Is(err, service.ErrWalletNotFound):
		return newAppError("WAL_003", "Wallet not tracked", http.StatusNotFound, err)
	case errors.As(err, &apiErr):
		return newAppError("UPS_001", "Portfolio backend error", http.StatusBadGateway, err)
	default:
		return newAppError("SYS_001", "Internal server error", http.StatusInternalServerError, err)
	}
}

// respondError writes err as {"error_code","message"} and attaches it to the gin context for the access log.
func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
}
