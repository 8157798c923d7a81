package studio

import "time"

// MaxAttempts is the number of calls made for one slot before the run fails.
// All error classes share it.
const MaxAttempts = 3

// BackoffBase is the first transient-error delay; each attempt doubles it.
const BackoffBase = time.Second

// Recovery is the action taken after a failed attempt, before the next one.
type Recovery int

const (
	// RecoverNone retries without any preparation.
	RecoverNone Recovery = iota

	// RecoverRefreshCredential forces a new credential selection.
	RecoverRefreshCredential

	// RecoverBackoff waits BackoffBase * 2^attempt.
	RecoverBackoff
)

func (r Recovery) String() string {
	switch r {
	case RecoverRefreshCredential:
		return "refresh_credential"
	case RecoverBackoff:
		return "backoff"
	default:
		return "none"
	}
}

var recoveryPolicy = map[ErrorClass]Recovery{
	ErrorClassAuthDenied:      RecoverRefreshCredential,
	ErrorClassTransientServer: RecoverBackoff,
	ErrorClassOther:           RecoverNone,
}

// RecoveryFor returns the recovery action for an error class.
func RecoveryFor(class ErrorClass) Recovery {
	if r, ok := recoveryPolicy[class]; ok {
		return r
	}
	return RecoverNone
}
