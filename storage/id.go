package storage

import "kinograph/domain"

// nextID allocates the id for a record inserted without one: 1 for an empty
// store, otherwise the highest existing key plus one. Allocation is
// monotonic. Gaps are never reused, since nothing in the system deletes
// individual records.
func nextID(keys domain.IDSet) int {
	next := 1
	for id := range keys {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
