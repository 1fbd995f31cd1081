// Package errors provides custom error types for the Stonkers API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"

	"stonkers/internal/portfolio"
	"stonkers/internal/valuation"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Holding errors.
var (
	ErrHoldingNotFound = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
	ErrInvalidQuantity = &AppError{Code: "INVALID_QUANTITY", Message: "Shares must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidPrice    = &AppError{Code: "INVALID_PRICE", Message: "Price must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount   = &AppError{Code: "INVALID_AMOUNT", Message: "Cash amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrReservedTicker  = &AppError{Code: "RESERVED_TICKER", Message: "This ticker is reserved for the cash position", StatusCode: http.StatusBadRequest}
	ErrInvalidReorder  = &AppError{Code: "INVALID_REORDER", Message: "Reorder position is out of range", StatusCode: http.StatusBadRequest}
)

// Market data errors.
var (
	ErrInvalidSymbol         = &AppError{Code: "INVALID_SYMBOL", Message: "Invalid stock symbol", StatusCode: http.StatusBadRequest}
	ErrSymbolNotFound        = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "No stock found for this symbol", StatusCode: http.StatusNotFound}
	ErrMarketDataUnavailable = &AppError{Code: "MARKET_DATA_UNAVAILABLE", Message: "Market data is temporarily unavailable", StatusCode: http.StatusBadGateway}
)

// Valuation errors.
var (
	ErrInvalidValuationInput = &AppError{Code: "INVALID_VALUATION_INPUT", Message: "Valuation inputs are invalid", StatusCode: http.StatusBadRequest}
)

// FromLedgerError maps a portfolio or valuation package error to its AppError.
// Unrecognized errors become ErrInternalServer.
func FromLedgerError(err error) *AppError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, portfolio.ErrHoldingNotFound):
		return Wrap(ErrHoldingNotFound, err)
	case stderrors.Is(err, portfolio.ErrInvalidQuantity):
		return Wrap(ErrInvalidQuantity, err)
	case stderrors.Is(err, portfolio.ErrInvalidPrice):
		return Wrap(ErrInvalidPrice, err)
	case stderrors.Is(err, portfolio.ErrInvalidAmount):
		return Wrap(ErrInvalidAmount, err)
	case stderrors.Is(err, portfolio.ErrReservedTicker):
		return Wrap(ErrReservedTicker, err)
	case stderrors.Is(err, portfolio.ErrEmptyTicker):
		return Wrap(ErrInvalidSymbol, err)
	case stderrors.Is(err, portfolio.ErrIndexOutOfRange):
		return Wrap(ErrInvalidReorder, err)
	case stderrors.Is(err, valuation.ErrInvalidMultiple),
		stderrors.Is(err, valuation.ErrNonFinite),
		stderrors.Is(err, valuation.ErrUnknownMethod):
		return WithMessage(Wrap(ErrInvalidValuationInput, err), err.Error())
	}
	return Wrap(ErrInternalServer, err)
}
