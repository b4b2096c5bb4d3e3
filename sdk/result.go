package sdk

import (
	"errors"
	"fmt"
)

// Result is the completion code of an SDK request
type Result int

const (
	Success Result = iota
	InvalidParameters
	NotFound
	NoConnection
	TimedOut
	InvalidUser
	InvalidAuth
	AuthMFARequired
	LimitExceeded
	AlreadyPending
	NotConfigured
	Canceled
	UnexpectedError
)

var resultNames = [...]string{
	Success:           "Success",
	InvalidParameters: "InvalidParameters",
	NotFound:          "NotFound",
	NoConnection:      "NoConnection",
	TimedOut:          "TimedOut",
	InvalidUser:       "InvalidUser",
	InvalidAuth:       "InvalidAuth",
	AuthMFARequired:   "AuthMFARequired",
	LimitExceeded:     "LimitExceeded",
	AlreadyPending:    "AlreadyPending",
	NotConfigured:     "NotConfigured",
	Canceled:          "Canceled",
	UnexpectedError:   "UnexpectedError",
}

func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// OK reports whether r is Success
func (r Result) OK() bool {
	return r == Success
}

// ErrFailed is wrapped by every error produced from a non-success Result
var ErrFailed = errors.New("sdk: request failed")

// Err returns nil for Success and an error wrapping ErrFailed otherwise
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrFailed, r)
}
