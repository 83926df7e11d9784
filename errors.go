package meshsdf

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error returned for input that cannot
// be sampled. Such errors are returned before any sampling work starts.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyMesh         = fmt.Errorf("%w: mesh has no triangles", ErrInvalidInput)
	ErrNonFinite         = fmt.Errorf("%w: non-finite vertex coordinate", ErrInvalidInput)
	ErrGridSize          = fmt.Errorf("%w: grid size must be 1 or larger", ErrInvalidInput)
	ErrPadding           = fmt.Errorf("%w: padding must be finite and non-negative", ErrInvalidInput)
	ErrDegenerateBounds  = fmt.Errorf("%w: bounding box has non-positive extent", ErrInvalidInput)
	ErrSingularTransform = fmt.Errorf("%w: transform collapses the mesh", ErrInvalidInput)
)
