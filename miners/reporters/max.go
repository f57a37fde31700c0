package reporters

import (
	"github.com/timtadh/data-structures/set"
)

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/miners"
)

// Max holds every itemset until closed and then passes on the maximal
// ones: those with no reported superset one item larger. The mined table
// is downward closed so this is every itemset without a frequent
// superset.
type Max struct {
	Reporter miners.Reporter
	nodes    []*lattice.Node
}

func NewMax(reporter miners.Reporter) *Max {
	return &Max{
		Reporter: reporter,
		nodes:    make([]*lattice.Node, 0, 100),
	}
}

func (r *Max) Report(n *lattice.Node) error {
	r.nodes = append(r.nodes, n)
	return nil
}

func (r *Max) Close() error {
	covered := set.NewSortedSet(len(r.nodes))
	for _, n := range r.nodes {
		for _, p := range n.Items.Parents() {
			covered.Add(p)
		}
	}
	var err error
	for _, n := range r.nodes {
		if covered.Has(n.Items) {
			continue
		}
		if err = r.Reporter.Report(n); err != nil {
			break
		}
	}
	if cerr := r.Reporter.Close(); err == nil {
		err = cerr
	}
	return err
}
