package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// BackendError is returned when the indexer responds with a status other than 200.
	BackendError = ErrorKind("Invalid response from backend! HTTP code is not 200.")

	// FormatError is returned when a value can't be parsed for display.
	FormatError = ErrorKind("Invalid time value")

	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
