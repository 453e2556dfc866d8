package services

import "fmt"

// FailureCategory classifies why an intake attempt failed. Handlers and tests
// match on the category; the message is for humans.
type FailureCategory string

const (
	CategoryValidation  FailureCategory = "validation"
	CategoryQuota       FailureCategory = "quota"
	CategoryStorage     FailureCategory = "storage"
	CategoryDuplicateID FailureCategory = "duplicate_id"
	CategoryPersistence FailureCategory = "persistence"
)

// IntakeError is the single failure type returned by the intake pipeline.
type IntakeError struct {
	Category FailureCategory
	Field    string // offending form field or filename, when known
	Limit    int64  // the violated limit, for quota failures
	Message  string
	Err      error
}

func (e *IntakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *IntakeError) Unwrap() error { return e.Err }

// ClientFixable reports whether the caller can correct the request and retry.
func (e *IntakeError) ClientFixable() bool {
	return e.Category == CategoryValidation || e.Category == CategoryQuota
}

// PublicMessage is what the API returns to the caller. Server-side failures
// are reported generically unless debug mode is on; client-fixable ones are
// reported verbatim.
func (e *IntakeError) PublicMessage(debug bool) string {
	if e.ClientFixable() || debug {
		return e.Message
	}
	return "Submission could not be processed. Please try again later."
}

func validationErr(field, msg string) *IntakeError {
	return &IntakeError{Category: CategoryValidation, Field: field, Message: msg}
}

func quotaErr(field string, limit int64, msg string) *IntakeError {
	return &IntakeError{Category: CategoryQuota, Field: field, Limit: limit, Message: msg}
}

func storageErr(msg string, err error) *IntakeError {
	return &IntakeError{Category: CategoryStorage, Message: msg, Err: err}
}

func persistenceErr(msg string, err error) *IntakeError {
	return &IntakeError{Category: CategoryPersistence, Message: msg, Err: err}
}
