package reporters

import (
	"github.com/timtadh/data-structures/set"
)

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/miners"
)

// Unique passes each distinct itemset on once.
type Unique struct {
	Seen     *set.SortedSet
	Reporter miners.Reporter
}

func NewUnique(reporter miners.Reporter) *Unique {
	return &Unique{
		Seen:     set.NewSortedSet(10),
		Reporter: reporter,
	}
}

func (r *Unique) Report(n *lattice.Node) error {
	if r.Seen.Has(n.Items) {
		return nil
	}
	r.Seen.Add(n.Items)
	return r.Reporter.Report(n)
}

func (r *Unique) Close() error {
	return r.Reporter.Close()
}
