package library

import "errors"

// Failure reasons surfaced to the front end. IO failures are returned as
// wrapped os errors rather than a sentinel.
var (
	// ErrStudentNotFound is returned when an operation references a USN
	// with no row in the students file.
	ErrStudentNotFound = errors.New("student not found")

	// ErrBookNotFound is returned when an operation references an ISBN
	// with no row in the books file.
	ErrBookNotFound = errors.New("book not found")

	// ErrStudentExists is returned when adding a student whose USN is
	// already present.
	ErrStudentExists = errors.New("student already exists")

	// ErrNoCopies is returned when issuing a book whose stored quantity
	// is zero or less.
	ErrNoCopies = errors.New("no copies available")

	// ErrInvalidInput wraps creation-time validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataCorruption indicates the stores disagree with each other or
	// a row no longer parses. It is never retried.
	ErrDataCorruption = errors.New("store corrupted")
)
