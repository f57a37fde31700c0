package reporters

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/miners"
)

// Skip passes on every Skip-th itemset.
type Skip struct {
	Skip     int
	Reporter miners.Reporter
	count    int
}

func NewSkip(n int, rptr miners.Reporter) *Skip {
	if n < 1 {
		n = 1
	}
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(n *lattice.Node) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(n)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
