package roster

import "errors"

var (
	// ErrValidation is returned when a required field is empty.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateID is returned when an employee ID is already assigned to a live employee.
	ErrDuplicateID = errors.New("employee ID is not unique")
	// ErrInconsistent is returned by Verify when the registry, index and departments disagree.
	ErrInconsistent = errors.New("records are inconsistent")
)
