package apriori

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"errors"
	"math/rand"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/types/itemset"
)

func groceries() *itemset.Dataset {
	return itemset.FromNames([][]string{
		{"bread", "milk"},
		{"bread", "diapers", "beer", "eggs"},
		{"milk", "diapers", "beer", "cola"},
		{"bread", "milk", "diapers", "beer"},
		{"bread", "milk", "diapers", "cola"},
	})
}

func conf(support float64) *config.Config {
	c := config.Default()
	c.MinSupport = support
	c.Seed = 7
	return c
}

func names(ds *itemset.Dataset, table *lattice.Table, k int) [][]string {
	l := table.Level(k)
	if l == nil {
		return nil
	}
	found := make([][]string, 0, l.Size())
	for _, s := range l.Itemsets() {
		found = append(found, ds.Names(s))
	}
	return found
}

type counter struct {
	reported []*lattice.Node
	closed   bool
}

func (c *counter) Report(n *lattice.Node) error {
	c.reported = append(c.reported, n)
	return nil
}

func (c *counter) Close() error {
	c.closed = true
	return nil
}

func mine(t *assert.Assertions, c *config.Config, txs *itemset.Transactions) *lattice.Table {
	m, err := NewMiner(c, txs, nil)
	t.Nil(err)
	table, err := m.Mine()
	t.Nil(err)
	return table
}

func TestGroceries(x *testing.T) {
	for _, verify := range []bool{true, false} {
		t := assert.New(x)
		ds := groceries()
		c := conf(.3)
		c.Verify = verify
		rptr := &counter{}
		m, err := NewMiner(c, ds.Transactions, rptr)
		t.Nil(err)
		table, err := m.Mine()
		t.Nil(err)
		t.Equal([][]string{{"beer"}, {"bread"}, {"cola"}, {"diapers"}, {"milk"}}, names(ds, table, 1))
		t.False(table.Has(ds.Vocabulary.Itemset("eggs")))
		t.True(m.Boundary().Has(ds.Vocabulary.Itemset("eggs")))
		n, has := table.Get(ds.Vocabulary.Itemset("diapers"))
		t.True(has)
		t.Equal(4, n.Count)
		t.Equal(.8, n.Support)
		n, has = table.Get(ds.Vocabulary.Itemset("cola"))
		t.True(has)
		t.Equal(.4, n.Support)

		t.Equal([][]string{
			{"beer", "bread"},
			{"beer", "diapers"},
			{"beer", "milk"},
			{"bread", "diapers"},
			{"bread", "milk"},
			{"cola", "diapers"},
			{"cola", "milk"},
			{"diapers", "milk"},
		}, names(ds, table, 2))
		t.Equal([][]string{
			{"beer", "bread", "diapers"},
			{"beer", "diapers", "milk"},
			{"bread", "diapers", "milk"},
			{"cola", "diapers", "milk"},
		}, names(ds, table, 3))
		t.Equal(3, table.MaxK())
		t.Equal(17, table.Size())
		t.Nil(lattice.Closed(table))

		t.Equal(17, len(rptr.reported))
		t.Equal(1, rptr.reported[0].Items.Size())
		t.Equal(3, rptr.reported[16].Items.Size())
		t.Nil(m.Close())
		t.True(rptr.closed)

		// {bread milk} is the only itemset of level 2 in the first
		// transaction and no level 3 candidate contains it.
		t.False(m.Active().Has(0))
		t.Equal(4, m.Active().Len())
	}
}

func TestSupportThreshold(x *testing.T) {
	t := assert.New(x)
	ds := groceries()
	table := mine(t, conf(.4), ds.Transactions)
	n, has := table.Get(ds.Vocabulary.Itemset("cola"))
	t.True(has, "2/5 meets .4")
	t.Equal(2, n.Count)
	t.True(table.Has(ds.Vocabulary.Itemset("beer", "milk")))

	table = mine(t, conf(.5), ds.Transactions)
	t.False(table.Has(ds.Vocabulary.Itemset("cola")))
	t.True(table.Has(ds.Vocabulary.Itemset("beer", "diapers")))
	n, has = table.Get(ds.Vocabulary.Itemset("bread", "diapers", "milk"))
	t.False(has)
	t.Nil(n)
	t.Equal(2, table.MaxK())
}

func TestSupportOfOne(x *testing.T) {
	t := assert.New(x)
	ds := groceries()
	table := mine(t, conf(1), ds.Transactions)
	t.Equal(0, table.Size())
	t.Equal(0, table.MaxK())
	table = mine(t, conf(.8), ds.Transactions)
	t.Equal([][]string{{"bread"}, {"diapers"}, {"milk"}}, names(ds, table, 1))
	t.Equal(1, table.MaxK())
}

func TestMaxLevel(x *testing.T) {
	t := assert.New(x)
	ds := groceries()
	c := conf(.3)
	c.MaxLevel = 2
	table := mine(t, c, ds.Transactions)
	t.Equal(2, table.MaxK())
	t.Equal(13, table.Size())
}

func TestSingleUse(x *testing.T) {
	t := assert.New(x)
	ds := groceries()
	m, err := NewMiner(conf(.3), ds.Transactions, nil)
	t.Nil(err)
	_, err = m.Mine()
	t.Nil(err)
	table, err := m.Mine()
	t.Equal(ErrAlreadyMined, err)
	t.Nil(table)
	t.Nil(m.Close())
}

func TestInvalidConfiguration(x *testing.T) {
	t := assert.New(x)
	ds := groceries()
	_, err := NewMiner(conf(1.1), ds.Transactions, nil)
	t.True(errors.Is(err, ErrInvalidConfiguration), "%v", err)
	_, err = NewMiner(conf(0), ds.Transactions, nil)
	t.True(errors.Is(err, ErrInvalidConfiguration), "%v", err)
	c := conf(.3)
	c.SampleSize = 0
	_, err = NewMiner(c, ds.Transactions, nil)
	t.True(errors.Is(err, ErrInvalidConfiguration), "%v", err)
	_, err = NewMiner(conf(.3), itemset.NewTransactions(nil), nil)
	t.True(errors.Is(err, ErrInvalidConfiguration), "%v", err)
	_, err = NewMiner(conf(.3), nil, nil)
	t.True(errors.Is(err, ErrInvalidConfiguration), "%v", err)
}

func random(seed int64, n, items, width int) *itemset.Transactions {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]itemset.Item, 0, n)
	for i := 0; i < n; i++ {
		row := make([]itemset.Item, 0, width)
		for j := 0; j < 1+rng.Intn(width); j++ {
			// skewed so that low items are frequent
			row = append(row, itemset.Item(rng.Intn(1+rng.Intn(items))))
		}
		rows = append(rows, row)
	}
	return itemset.NewTransactions(rows)
}

func TestVerifyIsClosedAndWorkerIndependent(x *testing.T) {
	t := assert.New(x)
	txs := random(11, 400, 30, 12)
	c := conf(.05)
	c.Verify = true
	expected := mine(t, c, txs)
	t.True(expected.MaxK() >= 2)
	t.Nil(lattice.Closed(expected))
	for _, workers := range []int{2, 3, 8} {
		c := conf(.05)
		c.Verify = true
		c.Parallelism = workers
		table := mine(t, c, txs)
		t.Equal(expected.Itemsets(), table.Itemsets())
	}
}

func TestEstimationIsReproducible(x *testing.T) {
	t := assert.New(x)
	txs := random(12, 600, 30, 12)
	c := conf(.05)
	c.SampleSize = 40
	c.Parallelism = 3
	a := mine(t, c, txs)
	b := mine(t, c.Copy(), txs)
	t.Equal(a.Itemsets(), b.Itemsets())

	c = conf(.05)
	c.Verify = true
	complete := mine(t, c, txs)
	for k, sets := range a.Itemsets() {
		for _, s := range sets {
			n, has := complete.Get(s)
			t.True(has, "estimation never adds an itemset: %v", s)
			m, _ := a.Get(s)
			t.Equal(n.Count, m.Count, "counts are exact: %v", s)
		}
		t.True(len(sets) <= complete.Level(k).Size())
	}
}

func TestFullSampleMatchesVerify(x *testing.T) {
	t := assert.New(x)
	txs := random(13, 300, 25, 10)
	c := conf(.06)
	c.SampleSize = txs.Len()
	sampled := mine(t, c, txs)
	c = conf(.06)
	c.Verify = true
	t.Equal(mine(t, c, txs).Itemsets(), sampled.Itemsets())
}

func TestInjectedRand(x *testing.T) {
	t := assert.New(x)
	txs := random(14, 300, 25, 10)
	run := func() map[int][]itemset.Itemset {
		c := conf(.05)
		c.Seed = 0
		c.SampleSize = 30
		m, err := NewMiner(c, txs, nil)
		t.Nil(err)
		m.Rand = rand.New(rand.NewSource(99))
		table, err := m.Mine()
		t.Nil(err)
		return table.Itemsets()
	}
	t.Equal(run(), run())
}
