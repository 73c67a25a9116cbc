package serviceerrs

import "errors"

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrConcurrencyConflict  = errors.New("concurrent modification of the account")
	ErrConcurrencyExhausted = errors.New("concurrency retries exhausted")
	ErrDeadlock             = errors.New("deadlock detected")
	ErrLockConflict         = errors.New("account is locked by concurrent mutations, retry later")
	ErrDuplicateExternalRef = errors.New("external reference already used for the account")
	ErrMutationsBusy        = errors.New("too many mutations in flight")
	ErrTokenExpired         = errors.New("token expired")
	ErrUnexpected           = errors.New("unexpected error")
)

// IsRetryable reports whether the client may repeat the request as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyExhausted) ||
		errors.Is(err, ErrLockConflict) ||
		errors.Is(err, ErrMutationsBusy)
}
