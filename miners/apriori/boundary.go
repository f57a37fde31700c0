package apriori

import (
	"github.com/timtadh/data-structures/set"
)

import (
	"github.com/timtadh/sapriori/types/itemset"
)

// Boundary holds the itemsets known or believed to be infrequent. Any
// superset of a member is infrequent as well, so candidates containing a
// member are pruned. The boundary only grows.
type Boundary struct {
	members *set.SortedSet
	bySize  map[int][]itemset.Itemset
}

func NewBoundary() *Boundary {
	return &Boundary{
		members: set.NewSortedSet(100),
		bySize:  make(map[int][]itemset.Itemset),
	}
}

func (b *Boundary) Add(batch ...itemset.Itemset) {
	for _, s := range batch {
		if b.members.Has(s) {
			continue
		}
		b.members.Add(s)
		b.bySize[s.Size()] = append(b.bySize[s.Size()], s)
	}
}

func (b *Boundary) Has(s itemset.Itemset) bool {
	return b.members.Has(s)
}

func (b *Boundary) Size() int {
	return b.members.Size()
}

// Prunes reports whether some member is a subset of candidate. Safe for
// concurrent use as long as nothing is being added.
func (b *Boundary) Prunes(candidate itemset.Itemset) bool {
	k := candidate.Size()
	if k > 1 {
		for _, p := range candidate.Parents() {
			if b.members.Has(p) {
				return true
			}
		}
	}
	for size, members := range b.bySize {
		if size > k || size == k-1 {
			continue
		}
		for _, m := range members {
			if m.Subset(candidate) {
				return true
			}
		}
	}
	return false
}
