package status

// Entry is one active status with its stack count. Count is strictly positive
// while the entry is present.
type Entry struct {
	Kind  Kind
	Count uint8
}

// Stacks is the ordered list of statuses carried by a combatant.
// Order is insertion order and defines resolution order within a phase.
type Stacks struct {
	entries []Entry
}

// Add merges n stacks of kind into the list. Existing entries keep their
// position; new kinds are appended. Adding zero stacks is a no-op.
func (s *Stacks) Add(kind Kind, n uint8) {
	if n == 0 {
		return
	}
	for i := range s.entries {
		if s.entries[i].Kind == kind {
			s.entries[i].Count = addSat(s.entries[i].Count, n)
			return
		}
	}
	s.entries = append(s.entries, Entry{Kind: kind, Count: n})
}

// Contains reports whether kind is present.
func (s *Stacks) Contains(kind Kind) bool {
	return s.Count(kind) > 0
}

// Count returns the stack count of kind, 0 when absent.
func (s *Stacks) Count(kind Kind) uint8 {
	for _, e := range s.entries {
		if e.Kind == kind {
			return e.Count
		}
	}
	return 0
}

// Len returns number of distinct statuses.
func (s *Stacks) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in resolution order.
func (s *Stacks) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Retain calls keep for every entry in order. keep may mutate the entry; the
// entry stays in the list only if keep returns true and its count is still positive.
// The decision for every element is made before any removal happens, so no entry is skipped.
func (s *Stacks) Retain(keep func(e *Entry) bool) {
	kept := s.entries[:0]
	for i := range s.entries {
		e := s.entries[i]
		if keep(&e) && e.Count > 0 {
			kept = append(kept, e)
		}
	}
	clear(s.entries[len(kept):])
	s.entries = kept
}

// ClearOnHandover removes every status that does not survive a turn handover
// and returns the removed kinds.
func (s *Stacks) ClearOnHandover() []Kind {
	var removed []Kind
	s.Retain(func(e *Entry) bool {
		if e.Kind.ClearsOnHandover() {
			removed = append(removed, e.Kind)
			return false
		}
		return true
	})
	return removed
}

// Reset drops every status.
func (s *Stacks) Reset() {
	s.entries = nil
}

func addSat(a, b uint8) uint8 {
	if c := a + b; c >= a {
		return c
	}
	return 255
}
