package apriori

import (
	"github.com/timtadh/data-structures/errors"
)

// Active tracks the transactions still worth scanning. It only shrinks: a
// removed index is never added back.
type Active struct {
	alive []bool
	idxs  []int
}

// NewActive starts with every index in [0, n).
func NewActive(n int) *Active {
	a := &Active{
		alive: make([]bool, n),
		idxs:  make([]int, n),
	}
	for i := range a.idxs {
		a.alive[i] = true
		a.idxs[i] = i
	}
	return a
}

// Snapshot is the sorted list of active indices. It is not modified by
// later calls to Remove and must not be modified by the caller.
func (a *Active) Snapshot() []int {
	return a.idxs
}

func (a *Active) Len() int {
	return len(a.idxs)
}

func (a *Active) Has(i int) bool {
	return i >= 0 && i < len(a.alive) && a.alive[i]
}

// Remove drops a batch of indices. Indices already removed are ignored. It
// returns how many were actually removed.
func (a *Active) Remove(batch []int) int {
	removed := 0
	for _, i := range batch {
		if i < 0 || i >= len(a.alive) {
			panic(errors.Errorf("transaction index %d out of range [0, %d)", i, len(a.alive)))
		}
		if a.alive[i] {
			a.alive[i] = false
			removed++
		}
	}
	if removed == 0 {
		return 0
	}
	idxs := make([]int, 0, len(a.idxs)-removed)
	for _, i := range a.idxs {
		if a.alive[i] {
			idxs = append(idxs, i)
		}
	}
	a.idxs = idxs
	return removed
}
