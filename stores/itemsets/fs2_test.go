package itemsets

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"path/filepath"
)

import (
	"github.com/timtadh/sapriori/types/itemset"
)

func fill(t *assert.Assertions, b MultiMap) {
	t.Nil(b.Add(itemset.New(3), 9))
	t.Nil(b.Add(itemset.New(1, 2), 4))
	t.Nil(b.Add(itemset.New(1), 10))
	t.Nil(b.Add(itemset.New(1, 2, 3), 2))
}

func TestAnonBpTree(x *testing.T) {
	t := assert.New(x)
	b, err := AnonBpTree()
	t.Nil(err)
	defer b.Delete()
	fill(t, b)
	t.Equal(4, b.Size())

	has, err := b.Has(itemset.New(2, 1))
	t.Nil(err)
	t.True(has)
	has, err = b.Has(itemset.New(2))
	t.Nil(err)
	t.False(has)
	count, err := b.Count(itemset.New(1))
	t.Nil(err)
	t.Equal(1, count)

	found := make([]int32, 0, 1)
	t.Nil(Do(func() (Iterator, error) { return b.Find(itemset.New(1, 2)) }, func(k itemset.Itemset, v int32) error {
		t.Equal(itemset.New(1, 2), k)
		found = append(found, v)
		return nil
	}))
	t.Equal([]int32{4}, found)

	keys := make([]itemset.Itemset, 0, 4)
	t.Nil(DoKey(b.Keys, func(k itemset.Itemset) error {
		keys = append(keys, k)
		return nil
	}))
	t.Equal([]itemset.Itemset{itemset.New(1), itemset.New(3), itemset.New(1, 2), itemset.New(1, 2, 3)}, keys)

	values := make([]int32, 0, 4)
	t.Nil(DoValue(b.Values, func(v int32) error {
		values = append(values, v)
		return nil
	}))
	t.Equal([]int32{10, 9, 4, 2}, values)

	t.Nil(b.Remove(itemset.New(3), func(v int32) bool { return v == 9 }))
	t.Equal(3, b.Size())
}

func TestBpTreeFile(x *testing.T) {
	t := assert.New(x)
	path := filepath.Join(x.TempDir(), "frequent.bptree")
	b, err := NewBpTree(path)
	t.Nil(err)
	fill(t, b)
	t.Nil(b.Close())

	b, err = OpenBpTree(path)
	t.Nil(err)
	total := int32(0)
	t.Nil(Do(b.Iterate, func(k itemset.Itemset, v int32) error {
		total += v
		return nil
	}))
	t.Equal(int32(25), total)
	t.Nil(b.Delete())
}
