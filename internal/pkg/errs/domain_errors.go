package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Item errors
	ErrItemNotFound    = errors.New("item not found")
	ErrItemUnavailable = errors.New("requested quantity not available")

	// Rental errors
	ErrRentalNotFound    = errors.New("rental not found")
	ErrRentalNotPayable  = errors.New("rental is not payable")
	ErrNotRentalParty    = errors.New("caller is not a party to this rental")
	ErrInvalidTransition = errors.New("invalid rental status transition")

	// Transaction / settlement errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSettlementConflict  = errors.New("transaction is no longer pending")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient permissions")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
