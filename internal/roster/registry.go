package roster

import (
	"fmt"
	"slices"
)

// IDRegistry tracks the employee IDs that are currently assigned.
// It is not safe for concurrent use; a Company serializes access to its registry.
type IDRegistry struct {
	ids map[string]struct{}
}

// NewIDRegistry returns an empty registry.
func NewIDRegistry() *IDRegistry {
	return &IDRegistry{ids: make(map[string]struct{})}
}

// Claim assigns id, failing with ErrDuplicateID if it is already assigned.
func (r *IDRegistry) Claim(id string) error {
	if _, ok := r.ids[id]; ok {
		return fmt.Errorf("%w: employee ID '%s' is already assigned, please choose a different ID", ErrDuplicateID, id)
	}
	r.ids[id] = struct{}{}

	return nil
}

// Release frees id and reports whether it was assigned.
func (r *IDRegistry) Release(id string) bool {
	if _, ok := r.ids[id]; !ok {
		return false
	}
	delete(r.ids, id)

	return true
}

// Contains reports whether id is assigned.
func (r *IDRegistry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of assigned IDs.
func (r *IDRegistry) Len() int {
	return len(r.ids)
}

// IDs returns the assigned IDs in sorted order.
func (r *IDRegistry) IDs() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
