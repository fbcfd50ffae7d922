package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeDiscovery indicates a provider module failed to load or instantiate.
	ErrCodeDiscovery ErrorCode = "DISCOVERY_ERROR"
	// ErrCodeConnection indicates a connection could not be opened or closed.
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"
	// ErrCodeTransaction indicates a begin, commit or rollback failure.
	ErrCodeTransaction ErrorCode = "TRANSACTION_ERROR"
	// ErrCodeExecution indicates a single statement failed.
	ErrCodeExecution ErrorCode = "EXECUTION_ERROR"
	// ErrCodeInvalidState indicates a session operation was called out of order.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnection: true,
}

// IsRetryableCode reports whether errors with the given code may be retried.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
