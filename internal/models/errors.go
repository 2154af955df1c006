package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DomainError represents a business rule rejection
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	ErrCodeInvalidProductCode = "INVALID_PRODUCT_CODE"
	ErrCodeOutOfStock         = "OUT_OF_STOCK"
	ErrCodeMissingDependency  = "MISSING_DEPENDENCY"
	ErrCodeInvalidProduct     = "INVALID_PRODUCT"
)

func NewInvalidAmountError(amount decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %s", amount.String()),
	}
}

func NewInsufficientFundsError(required, available decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("insufficient funds: required %s, available %s", required.String(), available.String()),
	}
}

func NewInvalidProductCodeError(code string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidProductCode,
		Message: fmt.Sprintf("product with code %q not found", code),
	}
}

func NewOutOfStockError(code string) *DomainError {
	return &DomainError{
		Code:    ErrCodeOutOfStock,
		Message: fmt.Sprintf("product %s is out of stock", code),
	}
}

// NewMissingDependencyError marks a component built without a required collaborator.
// It is a programming error, not a transaction outcome.
func NewMissingDependencyError(dependency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingDependency,
		Message: fmt.Sprintf("missing required dependency: %s", dependency),
	}
}

func NewInvalidProductError(code string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidProduct,
		Message: fmt.Sprintf("invalid product %q", code),
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
