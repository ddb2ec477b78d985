package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidVegetableID = "INVALID_VEGETABLE_ID"
	ErrCodeInvalidSaleID      = "INVALID_SALE_ID"
	ErrCodeInvalidName        = "INVALID_NAME"
	ErrCodeInvalidUnitPrice   = "INVALID_UNIT_PRICE"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmptySale          = "EMPTY_SALE"
	ErrCodeSaleTotalRange     = "SALE_TOTAL_OUT_OF_RANGE"
	ErrCodeVegetableNotFound  = "VEGETABLE_NOT_FOUND"
	ErrCodeSaleNotFound       = "SALE_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// ErrorKind classifies a DomainError for the transport layer.
type ErrorKind int

const (
	// KindValidation marks malformed identifiers and invalid field values.
	KindValidation ErrorKind = iota + 1
	// KindNotFound marks a missing row.
	KindNotFound
)

// Domain errors for business logic
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidJSON         = NewDomainError(KindValidation, ErrCodeInvalidJSON, "Request body is not valid JSON")
	ErrInvalidVegetableID  = NewDomainError(KindValidation, ErrCodeInvalidVegetableID, "Vegetable ID must be a UUID string")
	ErrInvalidSaleID       = NewDomainError(KindValidation, ErrCodeInvalidSaleID, "Sale ID must be a UUID string")
	ErrInvalidName         = NewDomainError(KindValidation, ErrCodeInvalidName, "Name must not be empty")
	ErrInvalidUnitPrice    = NewDomainError(KindValidation, ErrCodeInvalidUnitPrice, "Unit price must be an integer between 0 and 2147483647")
	ErrInvalidQuantity     = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptySale           = NewDomainError(KindValidation, ErrCodeEmptySale, "Sale must contain at least one item")
	ErrSaleTotalOutOfRange = NewDomainError(KindValidation, ErrCodeSaleTotalRange, "Sale total exceeds the supported range")
	ErrVegetableNotFound   = NewDomainError(KindNotFound, ErrCodeVegetableNotFound, "Vegetable not found")
	ErrSaleNotFound        = NewDomainError(KindNotFound, ErrCodeSaleNotFound, "Sale not found")
)

// IsKind reports whether err wraps a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}
