package reporters

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/miners"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(n *lattice.Node) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(n)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every reporter and returns the first error.
func (r *Chain) Close() error {
	var first error
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
