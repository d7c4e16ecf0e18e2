package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task exists for the given ID,
	// including malformed identifiers. Reported before any ownership check so
	// a prober cannot distinguish missing from foreign-but-missing.
	ErrTaskNotFound = errors.New("task not found")

	// ErrForbidden is returned when a task exists but belongs to another user.
	ErrForbidden = errors.New("not the task owner")

	// ErrInvalidTask is returned when task input fails validation
	// (empty title, unknown status or priority).
	ErrInvalidTask = errors.New("invalid task input")
)
