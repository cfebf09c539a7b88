package submission

import (
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("payload must be a JSON object")

// Step names the external call a submission failed at.
type Step string

const (
	StepBlobWrite Step = "blob_write"
	StepNotify    Step = "notify"
)

// StepError reports which step of a submission failed. When Step is
// StepNotify the payload is already stored under Key.
type StepError struct {
	Step Step
	Key  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("submission %s failed for %s: %v", e.Step, e.Key, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
