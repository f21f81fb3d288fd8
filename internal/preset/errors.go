package preset

import "errors"

var (
	// ErrCategoryNotFound is returned when a category id does not exist.
	ErrCategoryNotFound = errors.New("preset: category not found")

	// ErrPresetNotFound is returned when a preset id does not exist.
	ErrPresetNotFound = errors.New("preset: not found")

	// ErrNoDocument is returned by a Repository when no document has
	// been saved under the requested key yet.
	ErrNoDocument = errors.New("preset: no document")

	// ErrVersionMismatch is returned by Load when the persisted document
	// carries a version this build does not understand.
	ErrVersionMismatch = errors.New("preset: unsupported document version")

	// ErrNotLoaded is returned when an operation runs before Load.
	ErrNotLoaded = errors.New("preset: store not loaded")

	// ErrInvalidName is returned when a name is empty or too long.
	ErrInvalidName = errors.New("preset: invalid name")

	// ErrInvalidType is returned when a preset type is not recognised.
	ErrInvalidType = errors.New("preset: invalid type")

	// ErrInvalidAttribute is returned when a preset attribute is out of
	// range.
	ErrInvalidAttribute = errors.New("preset: invalid attribute")
)
