// Package targetset builds the O(1)-average membership index over a
// caller-supplied list of target seeds, backed by
// github.com/opencoff/go-mph's Compress-Hash-Displace minimal perfect hash.
package targetset

import (
	"sort"

	"github.com/opencoff/go-mph"
)

// MaxSize is the hard cap on distinct target seeds.
const MaxSize = 10000

// newChdBuilder constructs the CHD builder; a package variable (rather than
// a direct mph.NewChdBuilder call) so tests can force the fallback path
// below without depending on an adversarial key set actually exhausting
// CHD's retry budget.
var newChdBuilder = mph.NewChdBuilder

// Set is an immutable, build-once membership index over a deduplicated
// target-seed list.
type Set struct {
	index  mph.MPH
	slots  []uint32 // slots[i] is the key CHD placed at index i, if present[i]
	present []bool
	lookup map[uint32]struct{} // fallback path, see New
}

// New deduplicates seeds and builds the index. Callers must validate size
// (empty / too-large) before calling New; New itself only builds the index.
func New(seeds []uint32) *Set {
	dedup := make(map[uint32]struct{}, len(seeds))
	for _, s := range seeds {
		dedup[s] = struct{}{}
	}
	sorted := make([]uint32, 0, len(dedup))
	for s := range dedup {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if idx, ok := buildCHD(sorted); ok {
		return idx
	}
	return &Set{lookup: dedup}
}

// buildCHD attempts to build the CHD-backed index. CHD's Find only returns
// a candidate slot for a key that was actually added at construction time;
// it says nothing about keys outside that set (the library's own doc
// comment: "the return value is meaningful ONLY for keys in the original
// key set ... callers should verify the key at the returned index == k").
// So after freezing, every original key is re-queried once to record which
// slot it landed in; Contains then checks the recorded key at that slot.
func buildCHD(sorted []uint32) (*Set, bool) {
	builder, err := newChdBuilder(0.85)
	if err != nil {
		return nil, false
	}
	for _, v := range sorted {
		if err := builder.Add(uint64(v)); err != nil {
			return nil, false
		}
	}
	idx, err := builder.Freeze()
	if err != nil {
		// CHD occasionally can't find a collision-free displacement within
		// its retry budget for pathological key sets; the caller falls back
		// to a plain map so Contains still holds rather than the search
		// failing to start.
		return nil, false
	}

	n := idx.Len()
	slots := make([]uint32, n)
	present := make([]bool, n)
	for _, v := range sorted {
		slot, ok := idx.Find(uint64(v))
		if !ok || int(slot) >= n {
			return nil, false
		}
		slots[slot] = v
		present[slot] = true
	}

	return &Set{index: idx, slots: slots, present: present}, true
}

// Len returns the number of distinct target seeds.
func (s *Set) Len() int {
	if s.lookup != nil {
		return len(s.lookup)
	}
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Contains reports whether seed is one of the target seeds.
func (s *Set) Contains(seed uint32) bool {
	if s.lookup != nil {
		_, ok := s.lookup[seed]
		return ok
	}
	slot, ok := s.index.Find(uint64(seed))
	if !ok || int(slot) >= len(s.slots) || !s.present[slot] {
		return false
	}
	return s.slots[slot] == seed
}
