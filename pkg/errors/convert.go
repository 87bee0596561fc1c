package errors

// Mapping from error codes to HTTP status codes.
var codeMapping = map[string]int{
	ErrInternal:        500,
	ErrNotFound:        404,
	ErrInvalidArgument: 400,
	ErrUnauthenticated: 401,
	ErrUnauthorized:    403,
	ErrConflict:        409,
	ErrTimeout:         504,

	ErrInvalidRequest:  400,
	ErrAlreadyRefunded: 409,
	ErrInvalidState:    409,
	ErrGateway:         502,
}

// GetCodeMapping returns the HTTP status for an error code.
func GetCodeMapping(code string) int {
	if status, ok := codeMapping[code]; ok {
		return status
	}
	return 500
}
