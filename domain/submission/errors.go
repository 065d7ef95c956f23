package submission

import (
	"net/http"
	"projectform/common"
)

var (
	ErrAlreadySubmitted   = &AlreadySubmittedError{}
	ErrSubmissionInFlight = &SubmissionInFlightError{}
	ErrTooFrequent        = &TooFrequentError{}
)

// InvalidSubmissionError collects every failing field message of one attempt.
type InvalidSubmissionError struct {
	Messages []string
}

func (e *InvalidSubmissionError) Error() string {
	return "submission validation failed"
}
func (e *InvalidSubmissionError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusBadRequest, Code: "submission.validation_failed",
		Message: "please correct the following errors", Data: e.Messages}
}

// DuplicateRecordError reports the colliding fields of the first stored
// record that conflicts with the candidate.
type DuplicateRecordError struct {
	Conflicts []FieldConflict
}

func (e *DuplicateRecordError) Error() string {
	return "submission collides with an existing record"
}
func (e *DuplicateRecordError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusConflict, Code: "submission.duplicate_record",
		Message: "some fields are already taken", Data: e.Conflicts}
}

// AlreadySubmittedError is the store-level conflict on the enrollment number key.
type AlreadySubmittedError struct {
}

func (e *AlreadySubmittedError) Error() string {
	return "this enrollment number has already been submitted"
}
func (e *AlreadySubmittedError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusConflict, Code: "submission.already_submitted",
		Message: "this enrollment number has already been submitted", Data: nil}
}

// StoreFailureError wraps an infrastructure error. The response carries a
// generic message only, the cause goes to the log.
type StoreFailureError struct {
	Cause error
}

func (e *StoreFailureError) Unwrap() error {
	return e.Cause
}
func (e *StoreFailureError) Error() string {
	if e.Cause != nil {
		return "submission store failure: " + e.Cause.Error()
	}
	return "submission store failure"
}
func (e *StoreFailureError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusInternalServerError, Code: "submission.store_failure",
		Message: "storage is temporarily unavailable, please retry", Data: nil}
}

type SubmissionInFlightError struct {
}

func (e *SubmissionInFlightError) Error() string {
	return "a submission is already in progress"
}
func (e *SubmissionInFlightError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusTooManyRequests, Code: "submission.in_flight",
		Message: "a submission is already in progress, please wait", Data: nil}
}

type TooFrequentError struct {
}

func (e *TooFrequentError) Error() string {
	return "submit attempts too frequent"
}
func (e *TooFrequentError) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusTooManyRequests, Code: "submission.too_frequent",
		Message: "please wait a moment before submitting again", Data: nil}
}
