package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/stores/itemsets"
)

// Store saves every frequent itemset with its support count into a B+tree
// multimap.
type Store struct {
	Store itemsets.MultiMap
	owned bool
}

// NewStore creates a B+tree at path. An empty path keeps it in anonymous
// memory.
func NewStore(path string) (*Store, error) {
	var b *itemsets.BpTree
	var err error
	if path == "" {
		b, err = itemsets.AnonBpTree()
	} else {
		b, err = itemsets.NewBpTree(path)
	}
	if err != nil {
		return nil, err
	}
	return &Store{Store: b, owned: true}, nil
}

// Into reports into an existing multimap, which Close leaves open.
func Into(m itemsets.MultiMap) *Store {
	return &Store{Store: m}
}

func (r *Store) Report(n *lattice.Node) error {
	return r.Store.Add(n.Items, int32(n.Count))
}

func (r *Store) Close() error {
	if !r.owned {
		return nil
	}
	errors.Logf("INFO", "stored %d frequent itemsets", r.Store.Size())
	return r.Store.Close()
}
