package errs

// Categories every use case error is marked with. Handlers map them to HTTP statuses.
var (
	ErrInvalidInput    = New("invalid input")
	ErrInvalidSchedule = New("invalid schedule")
	ErrConflict        = New("conflict")
	ErrNotFound        = New("not found")
	ErrUnauthorized    = New("unauthorized")
	ErrForbidden       = New("forbidden")

	// ErrConfiguration is an operator mistake (missing secret, schema mismatch). Not retryable.
	ErrConfiguration = New("configuration error")
)
