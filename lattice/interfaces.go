package lattice

import (
	"github.com/timtadh/sapriori/types/itemset"
)

type Formatter interface {
	FileExt() string
	FormatItemset(itemset.Itemset) string
	FormatPattern(s itemset.Itemset, count int, support float64) string
}

type Edge struct {
	Src, Targ int
}

// Lattice is the frequent part of the itemset lattice: every frequent
// itemset and an edge from each frequent (k-1)-subset to its k superset.
type Lattice struct {
	V []*Node
	E []Edge
}
