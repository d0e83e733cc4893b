package domain

import "errors"

var (
	// ErrValidation indicates malformed input: a bad template definition or an
	// onboarding batch naming a project that is not part of the batch.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a template id is already registered and overwrite
	// was not permitted.
	ErrConflict = errors.New("already exists")

	// ErrNotFound indicates an unknown template or project id.
	ErrNotFound = errors.New("not found")

	// ErrScheduling indicates fixed-point resolution made no progress, which
	// means a dependency cycle or an unreachable reference survived validation.
	ErrScheduling = errors.New("scheduling unresolvable")
)
