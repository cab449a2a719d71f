package transaction

// Status is the normalized terminal state of a payment attempt.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Gateway transaction response codes.
const (
	ResponseCodeApproved = "1"
	ResponseCodeDeclined = "2"
	ResponseCodeError    = "3"
	ResponseCodeHeld     = "4"
)

// StatusFromResponseCode maps 1 to approved, 2 to declined and anything else to error.
func StatusFromResponseCode(code string) Status {
	switch code {
	case ResponseCodeApproved:
		return StatusApproved
	case ResponseCodeDeclined:
		return StatusDeclined
	default:
		return StatusError
	}
}

// Source records which path produced an audit row.
type Source string

const (
	SourceReturn  Source = "return"
	SourceWebhook Source = "webhook"
	SourceDirect  Source = "direct"
)
