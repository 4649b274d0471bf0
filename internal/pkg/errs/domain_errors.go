package errs

import "errors"

// Error taxonomy shared by the usecase and handler layers.
// Usecases Mark concrete failures with one of these so callers can branch with Is.
var (
	// malformed or out-of-range input; never advances state
	ErrValidation = errors.New("validation error")
	// unknown voucher code, unknown user
	ErrNotFound = errors.New("not found")
	// voucher not active, insufficient cashback balance
	ErrStateConflict = errors.New("state conflict")
	// membership check or outbound send failed
	ErrExternalCall = errors.New("external call failed")
	// caller lacks the permission for the operation
	ErrForbidden = errors.New("forbidden")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
