package errs

// Caller-facing error taxonomy. Use-case errors are marked with one of these
// so handlers can classify them with errors.Is.
var (
	// Input errors
	ErrValidation       = New("validation error")
	ErrCustomerNotFound = New("customer not found")

	// Deployment errors
	ErrCredentialsNotConfigured = New("payment gateway credentials not configured")

	// Gateway errors
	ErrGateway = New("payment gateway error")

	// Webhook errors
	ErrSignatureVerificationFailed = New("webhook signature verification failed")

	// Correlation store errors
	ErrCorrelationNotFound = New("correlation record not found")
	ErrCorrelationExists   = New("correlation record already exists")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)

// Validation returns an error marked as ErrValidation carrying msg.
func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}
