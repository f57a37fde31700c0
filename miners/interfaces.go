package miners

import (
	"github.com/timtadh/sapriori/lattice"
)

// Note: the miner's Close function should close the reporter that was passed
// into it.
type Miner interface {
	Mine() (*lattice.Table, error)
	Close() error
}

// Reporter receives every frequent itemset once, level by level, as each
// level completes.
type Reporter interface {
	Report(*lattice.Node) error
	Close() error
}
