package errors

// Common error codes.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
)

// Payment domain error codes.
const (
	// ErrInvalidRequest indicates caller-supplied data violates a precondition.
	ErrInvalidRequest = "INVALID_REQUEST"
	// ErrAlreadyRefunded signals an idempotent refund retry on a refunded payment.
	ErrAlreadyRefunded = "ALREADY_REFUNDED"
	// ErrInvalidState indicates a valid entity in the wrong status or method
	// combination for the requested operation.
	ErrInvalidState = "INVALID_STATE"
	// ErrGateway covers any failure, timeout, or malformed response from the
	// external payment gateway.
	ErrGateway = "GATEWAY_ERROR"
)
