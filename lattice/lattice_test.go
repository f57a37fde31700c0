package lattice

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/sapriori/types/itemset"
)

func node(count int, items ...itemset.Item) *Node {
	return &Node{Items: itemset.New(items...), Count: count, Support: float64(count) / 10}
}

func table(t *assert.Assertions, levels ...[]*Node) *Table {
	tbl := NewTable()
	for i, nodes := range levels {
		l, err := NewLevel(i+1, nodes)
		t.Nil(err)
		t.Nil(tbl.Append(l))
	}
	return tbl
}

func TestLevelIndex(x *testing.T) {
	t := assert.New(x)
	l, err := NewLevel(2, []*Node{node(3, 2, 3), node(4, 1, 2)})
	t.Nil(err)
	t.Equal(2, l.Size())
	t.Equal([]itemset.Itemset{itemset.New(1, 2), itemset.New(2, 3)}, l.Itemsets())
	n, has := l.Get(itemset.New(3, 2))
	t.True(has)
	t.Equal(3, n.Count)
	t.False(l.Has(itemset.New(1, 3)))
	_, has = l.Get(itemset.New(1, 3))
	t.False(has)
}

func TestLevelRejects(x *testing.T) {
	t := assert.New(x)
	_, err := NewLevel(2, []*Node{node(3, 1)})
	t.NotNil(err)
	_, err = NewLevel(1, []*Node{node(3, 1), node(2, 1)})
	t.NotNil(err)
}

func TestTableAppendOnly(x *testing.T) {
	t := assert.New(x)
	tbl := NewTable()
	l2, err := NewLevel(2, nil)
	t.Nil(err)
	t.NotNil(tbl.Append(l2), "level 2 can not come first")
	l1, err := NewLevel(1, []*Node{node(5, 1)})
	t.Nil(err)
	t.Nil(tbl.Append(l1))
	t.NotNil(tbl.Append(l1), "level 1 can not be written twice")
	t.Nil(tbl.Append(l2))
	t.Equal(2, tbl.MaxK())
	t.Nil(tbl.Level(3))
	t.Nil(tbl.Level(0))
	t.Equal(map[int][]itemset.Itemset{1: {itemset.New(1)}, 2: {}}, tbl.Itemsets())
}

func TestTableLookup(x *testing.T) {
	t := assert.New(x)
	tbl := table(t,
		[]*Node{node(6, 1), node(5, 2), node(4, 3)},
		[]*Node{node(4, 1, 2), node(3, 2, 3)},
	)
	t.Equal(5, tbl.Size())
	t.True(tbl.Has(itemset.New(2, 3)))
	t.False(tbl.Has(itemset.New(1, 3)))
	t.False(tbl.Has(itemset.New(1, 2, 3)))
	n, has := tbl.Get(itemset.New(2))
	t.True(has)
	t.Equal(5, n.Count)
	_, has = tbl.Get(itemset.New(1, 2, 3))
	t.False(has)
}

func TestClosed(x *testing.T) {
	t := assert.New(x)
	closed := table(t,
		[]*Node{node(6, 1), node(5, 2), node(4, 3)},
		[]*Node{node(4, 1, 2), node(3, 2, 3), node(3, 1, 3)},
		[]*Node{node(3, 1, 2, 3)},
	)
	t.Nil(Closed(closed))
	open := table(t,
		[]*Node{node(6, 1), node(5, 2), node(4, 3)},
		[]*Node{node(4, 1, 2), node(3, 2, 3)},
		[]*Node{node(3, 1, 2, 3)},
	)
	t.NotNil(Closed(open))
	missingItem := table(t,
		[]*Node{node(6, 1)},
		[]*Node{node(4, 1, 2)},
	)
	t.NotNil(Closed(missingItem))
}

func TestMakeLattice(x *testing.T) {
	t := assert.New(x)
	tbl := table(t,
		[]*Node{node(6, 1), node(5, 2), node(4, 3)},
		[]*Node{node(4, 1, 2), node(3, 2, 3)},
	)
	lat := MakeLattice(tbl)
	t.Equal(5, len(lat.V))
	// {1,2} <- {1}, {2}; {2,3} <- {2}, {3}
	t.ElementsMatch([]Edge{{0, 3}, {1, 3}, {1, 4}, {2, 4}}, lat.E)
}
