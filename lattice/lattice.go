package lattice

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/sapriori/types/itemset"
)

// Node is a frequent itemset with its exact support count. Support is the
// count over the total number of transactions.
type Node struct {
	Items   itemset.Itemset
	Count   int
	Support float64
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node %v %d %.4g>", n.Items, n.Count, n.Support)
}

// Level holds the frequent itemsets of size K in canonical order.
type Level struct {
	K     int
	Nodes []*Node
	index *hashtable.LinearHash // itemset.Itemset ==> *Node
}

// NewLevel sorts nodes into canonical order and indexes them. Every node
// must have size k.
func NewLevel(k int, nodes []*Node) (*Level, error) {
	l := &Level{
		K:     k,
		Nodes: nodes,
		index: hashtable.NewLinearHash(),
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Items.Compare(nodes[j].Items) < 0 })
	for _, n := range nodes {
		if n.Items.Size() != k {
			return nil, errors.Errorf("itemset %v does not belong on level %d", n.Items, k)
		}
		if l.index.Has(n.Items) {
			return nil, errors.Errorf("itemset %v is on level %d twice", n.Items, k)
		}
		if err := l.index.Put(n.Items, n); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Level) Size() int {
	return len(l.Nodes)
}

func (l *Level) Has(s itemset.Itemset) bool {
	return l.index.Has(s)
}

func (l *Level) Get(s itemset.Itemset) (*Node, bool) {
	if !l.index.Has(s) {
		return nil, false
	}
	n, err := l.index.Get(s)
	if err != nil {
		return nil, false
	}
	return n.(*Node), true
}

// Itemsets lists the itemsets of the level in canonical order.
func (l *Level) Itemsets() []itemset.Itemset {
	sets := make([]itemset.Itemset, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		sets = append(sets, n.Items)
	}
	return sets
}

// Table is the append-only frequent itemset table: level k lives at
// position k-1 and a written level is never revised.
type Table struct {
	levels []*Level
}

func NewTable() *Table {
	return &Table{levels: make([]*Level, 0, 10)}
}

// Append adds the next level. Its K must be one more than the last.
func (t *Table) Append(l *Level) error {
	if l.K != len(t.levels)+1 {
		return errors.Errorf("expected level %d got level %d", len(t.levels)+1, l.K)
	}
	t.levels = append(t.levels, l)
	return nil
}

// MaxK is the size of the largest completed level (0 when empty).
func (t *Table) MaxK() int {
	return len(t.levels)
}

// Level returns level k, nil when k has not been completed.
func (t *Table) Level(k int) *Level {
	if k < 1 || k > len(t.levels) {
		return nil
	}
	return t.levels[k-1]
}

func (t *Table) Levels() []*Level {
	return t.levels
}

func (t *Table) Has(s itemset.Itemset) bool {
	l := t.Level(s.Size())
	return l != nil && l.Has(s)
}

func (t *Table) Get(s itemset.Itemset) (*Node, bool) {
	l := t.Level(s.Size())
	if l == nil {
		return nil, false
	}
	return l.Get(s)
}

// Size counts the frequent itemsets on every level.
func (t *Table) Size() int {
	size := 0
	for _, l := range t.levels {
		size += l.Size()
	}
	return size
}

// Itemsets is the k ==> frequent itemsets mapping. Levels that completed
// with no frequent itemsets are included as empty.
func (t *Table) Itemsets() map[int][]itemset.Itemset {
	m := make(map[int][]itemset.Itemset, len(t.levels))
	for _, l := range t.levels {
		m[l.K] = l.Itemsets()
	}
	return m
}

// MakeLattice links every frequent itemset to its frequent supersets of
// the next size.
func MakeLattice(t *Table) *Lattice {
	V := make([]*Node, 0, t.Size())
	idx := make(map[string]int, t.Size())
	for _, l := range t.levels {
		for _, n := range l.Nodes {
			idx[n.Items.Key()] = len(V)
			V = append(V, n)
		}
	}
	E := make([]Edge, 0, len(V)*2)
	for j, n := range V {
		if n.Items.Size() <= 1 {
			continue
		}
		for _, p := range n.Items.Parents() {
			if i, has := idx[p.Key()]; has {
				E = append(E, Edge{Src: i, Targ: j})
			}
		}
	}
	return &Lattice{V: V, E: E}
}

// Closed checks that the table is downward closed: every (k-1)-subset of
// a frequent k-itemset is itself frequent.
func Closed(t *Table) error {
	for _, l := range t.levels {
		if l.K <= 1 {
			continue
		}
		prev := t.Level(l.K - 1)
		for _, n := range l.Nodes {
			for _, p := range n.Items.Parents() {
				if !prev.Has(p) {
					return errors.Errorf("%v is frequent but its subset %v is not", n.Items, p)
				}
			}
		}
	}
	return nil
}
