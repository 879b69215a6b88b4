package mc

// Frontier tracks the two candidate-event sets of a cluster surface:
// attach candidates (vacant sites adjacent to the body) and detach
// candidates (occupied sites with at least one vacant neighbor).
//
// Both sets support O(1) membership tests, insertion, swap-removal, and
// uniform sampling by slot, so per-step cost stays proportional to surface
// size rather than lattice volume. A site is vacant or occupied, never
// both, so one kind/slot table serves both sets.
type Frontier struct {
	attach []int32
	detach []int32
	kind   []uint8 // per lattice site: frontNone, frontAttach, frontDetach
	slot   []int32 // per lattice site: position inside its set
}

const (
	frontNone uint8 = iota
	frontAttach
	frontDetach
)

// NewFrontier creates an empty frontier over a lattice of the given size.
func NewFrontier(size int) *Frontier {
	cap := size / 10
	if cap < 128 {
		cap = 128
	}
	return &Frontier{
		attach: make([]int32, 0, cap),
		detach: make([]int32, 0, cap),
		kind:   make([]uint8, size),
		slot:   make([]int32, size),
	}
}

// AttachLen returns the number of attach candidates.
func (f *Frontier) AttachLen() int { return len(f.attach) }

// DetachLen returns the number of detach candidates.
func (f *Frontier) DetachLen() int { return len(f.detach) }

// AttachAt returns the attach candidate at slot i.
func (f *Frontier) AttachAt(i int) int { return int(f.attach[i]) }

// DetachAt returns the detach candidate at slot i.
func (f *Frontier) DetachAt(i int) int { return int(f.detach[i]) }

// InAttach reports whether idx is an attach candidate.
func (f *Frontier) InAttach(idx int) bool { return f.kind[idx] == frontAttach }

// InDetach reports whether idx is a detach candidate.
func (f *Frontier) InDetach(idx int) bool { return f.kind[idx] == frontDetach }

// AddAttach inserts idx into the attach set; no-op if already present.
func (f *Frontier) AddAttach(idx int) {
	if f.kind[idx] == frontAttach {
		return
	}
	f.slot[idx] = int32(len(f.attach))
	f.attach = append(f.attach, int32(idx))
	f.kind[idx] = frontAttach
}

// RemoveAttach removes idx from the attach set by swap-remove; no-op if
// absent.
func (f *Frontier) RemoveAttach(idx int) {
	if f.kind[idx] != frontAttach {
		return
	}
	f.kind[idx] = frontNone
	i := f.slot[idx]
	last := f.attach[len(f.attach)-1]
	f.attach = f.attach[:len(f.attach)-1]
	if int(i) != len(f.attach) {
		f.attach[i] = last
		f.slot[last] = i
	}
	f.slot[idx] = 0
}

// AddDetach inserts idx into the detach set; no-op if already present.
func (f *Frontier) AddDetach(idx int) {
	if f.kind[idx] == frontDetach {
		return
	}
	f.slot[idx] = int32(len(f.detach))
	f.detach = append(f.detach, int32(idx))
	f.kind[idx] = frontDetach
}

// RemoveDetach removes idx from the detach set by swap-remove; no-op if
// absent.
func (f *Frontier) RemoveDetach(idx int) {
	if f.kind[idx] != frontDetach {
		return
	}
	f.kind[idx] = frontNone
	i := f.slot[idx]
	last := f.detach[len(f.detach)-1]
	f.detach = f.detach[:len(f.detach)-1]
	if int(i) != len(f.detach) {
		f.detach[i] = last
		f.slot[last] = i
	}
	f.slot[idx] = 0
}

// Reset empties both sets.
func (f *Frontier) Reset() {
	for _, idx := range f.attach {
		f.kind[idx] = frontNone
		f.slot[idx] = 0
	}
	for _, idx := range f.detach {
		f.kind[idx] = frontNone
		f.slot[idx] = 0
	}
	f.attach = f.attach[:0]
	f.detach = f.detach[:0]
}
