package gotenant

import "errors"

// Domain errors returned by the engine and its value constructors.
var (
	// ErrInvalidID is returned when an identifier fails validation.
	ErrInvalidID = errors.New("gotenant: invalid identifier")

	// ErrInvalidPermission is returned when a permission string fails validation.
	ErrInvalidPermission = errors.New("gotenant: invalid permission")

	// ErrStore wraps errors returned by the backing store. The original
	// store error is joined and remains matchable with errors.Is/As.
	ErrStore = errors.New("gotenant: store error")

	// ErrRoleCycle is returned when role inheritance expansion finds a cycle.
	ErrRoleCycle = errors.New("gotenant: role inheritance cycle detected")

	// ErrInheritDepthExceeded is returned when role inheritance expansion
	// exceeds the configured maximum depth.
	ErrInheritDepthExceeded = errors.New("gotenant: role inheritance depth exceeded")

	// ErrNilStore is returned by Builder.Build when no store was provided.
	ErrNilStore = errors.New("gotenant: store is required")

	// ErrInvalidDepth is returned by Builder.Build for a non-positive depth limit.
	ErrInvalidDepth = errors.New("gotenant: max inherit depth must be positive")

	// ErrBuilderUsed is returned when Build is called more than once.
	ErrBuilderUsed = errors.New("gotenant: builder already used")

	// ErrInvalidConfig is returned when environment configuration cannot be parsed.
	ErrInvalidConfig = errors.New("gotenant: invalid configuration")
)

// storeError wraps a backend failure so callers can match ErrStore while
// still inspecting the underlying error.
func storeError(err error) error {
	return errors.Join(ErrStore, err)
}
