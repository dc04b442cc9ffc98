package domain

import (
	"encoding/json"
	"sort"
)

// IDSet is an unordered set of entity ids. It backs both the liker set of a
// movie and the friend set of a user. The json form is a sorted array, so
// responses stay deterministic even though the set itself has no order.
type IDSet map[int]struct{}

// NewIDSet returns a set containing the given ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add puts id into the set. Adding an id that's already present is a no-op.
func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

// Remove takes id out of the set. Removing an absent id is a no-op.
func (s IDSet) Remove(id int) {
	delete(s, id)
}

// Has reports whether id is in the set.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	return len(s)
}

// IDs returns the set's members as a sorted slice.
func (s IDSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	if s == nil {
		return nil
	}
	clone := make(IDSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}

// Intersect returns a new set holding the ids present in both s and other.
func (s IDSet) Intersect(other IDSet) IDSet {
	common := NewIDSet()
	for id := range s {
		if other.Has(id) {
			common.Add(id)
		}
	}
	return common
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
