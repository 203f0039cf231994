package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrPartialBulkFailure is matched by BulkDeleteResult.Err when at least one
// member of a bulk operation failed.
var ErrPartialBulkFailure = errors.New("bulk operation partially failed")

// BulkDeleteResult aggregates the outcome of a bulk delete per id.
// Succeeded ids already took effect server-side even if others failed.
type BulkDeleteResult struct {
	Succeeded []int
	Failed    map[int]error
}

// NewBulkDeleteResult returns an empty result ready to be filled.
func NewBulkDeleteResult() BulkDeleteResult {
	return BulkDeleteResult{Failed: make(map[int]error)}
}

// FailedIDs returns the failed ids in ascending order.
func (r BulkDeleteResult) FailedIDs() []int {
	ids := make([]int, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// OK reports whether every member succeeded.
func (r BulkDeleteResult) OK() bool {
	return len(r.Failed) == 0
}

// Err returns nil when all deletes succeeded, otherwise an error matching
// ErrPartialBulkFailure that lists the failed ids.
func (r BulkDeleteResult) Err() error {
	if r.OK() {
		return nil
	}
	ids := r.FailedIDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d: %v", id, r.Failed[id]))
	}
	return fmt.Errorf("%w: %d of %d failed (%s)",
		ErrPartialBulkFailure, len(ids), len(ids)+len(r.Succeeded), strings.Join(parts, "; "))
}
