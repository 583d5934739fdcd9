package vector

import (
	"github.com/cockroachdb/errors"

	"dynarray/memory"
)

// Error kinds reported by Vector. Returned errors wrap one of these with
// call context; match them with errors.Is.
var (
	// ErrOutOfRange indicates an index outside [0, Len()).
	ErrOutOfRange = errors.New("vector: index out of range")

	// ErrEmpty indicates Front, Back or PopBack on an empty vector.
	ErrEmpty = errors.New("vector: container is empty")

	// ErrInvalidPosition indicates an Insert position outside [0, Len()],
	// an Erase position outside [0, Len()), or a negative Resize length.
	ErrInvalidPosition = errors.New("vector: invalid position")

	// ErrAllocation indicates the allocator could not provide a buffer.
	ErrAllocation = memory.ErrAllocation
)

func outOfRange(i, n int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, n)
}
