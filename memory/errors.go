package memory

import "github.com/cockroachdb/errors"

// ErrAllocation is returned when a buffer cannot be acquired, either
// because the request is not representable or because a budget is spent.
var ErrAllocation = errors.New("memory: allocation failure")
