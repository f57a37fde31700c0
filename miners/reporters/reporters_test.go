package reporters

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/miners"
	"github.com/timtadh/sapriori/stores/itemsets"
	"github.com/timtadh/sapriori/types/itemset"
)

func nodes() []*lattice.Node {
	return []*lattice.Node{
		{Items: itemset.New(0), Count: 3, Support: .6},
		{Items: itemset.New(1), Count: 4, Support: .8},
		{Items: itemset.New(0, 1), Count: 2, Support: .4},
	}
}

func report(t *assert.Assertions, r miners.Reporter) {
	for _, n := range nodes() {
		t.Nil(r.Report(n))
	}
	t.Nil(r.Close())
}

func output(x *testing.T) *config.Config {
	c := config.Default()
	c.MinSupport = .4
	c.Output = x.TempDir()
	return c
}

func formatter() *itemset.Formatter {
	return &itemset.Formatter{Dataset: itemset.FromNames([][]string{{"bread", "milk"}})}
}

func read(t *assert.Assertions, path string) string {
	bytes, err := os.ReadFile(path)
	t.Nil(err)
	return string(bytes)
}

func TestChain(x *testing.T) {
	t := assert.New(x)
	a, b := &Collector{}, &Collector{}
	report(t, &Chain{Reporters: []miners.Reporter{a, b}})
	t.Equal(nodes(), a.Nodes)
	t.Equal(nodes(), b.Nodes)
}

func TestSkip(x *testing.T) {
	t := assert.New(x)
	c := &Collector{}
	report(t, NewSkip(2, c))
	t.Equal(1, len(c.Nodes))
	t.Equal(itemset.New(1), c.Nodes[0].Items)
}

func TestUnique(x *testing.T) {
	t := assert.New(x)
	c := &Collector{}
	u := NewUnique(c)
	for _, n := range append(nodes(), nodes()...) {
		t.Nil(u.Report(n))
	}
	t.Nil(u.Close())
	t.Equal(3, len(c.Nodes))
}

func TestMax(x *testing.T) {
	t := assert.New(x)
	c := &Collector{}
	m := NewMax(c)
	report(t, m)
	t.Equal(1, len(c.Nodes))
	t.Equal(itemset.New(0, 1), c.Nodes[0].Items)

	c = &Collector{}
	m = NewMax(c)
	for _, n := range nodes()[:2] {
		t.Nil(m.Report(n))
	}
	t.Nil(m.Close())
	t.Equal(nodes()[:2], c.Nodes)
}

func TestLog(x *testing.T) {
	t := assert.New(x)
	report(t, NewLog(formatter(), "DEBUG", "frequent"))
	report(t, NewLog(formatter(), "", ""))
}

func TestFile(x *testing.T) {
	t := assert.New(x)
	c := output(x)
	r, err := NewFile(c, formatter(), "frequent")
	t.Nil(err)
	report(t, r)
	t.Equal("1\t3\t0.6\t{bread}\n1\t4\t0.8\t{milk}\n2\t2\t0.4\t{bread milk}\n",
		read(t, filepath.Join(c.Output, "frequent.items")))
}

func TestDir(x *testing.T) {
	t := assert.New(x)
	c := output(x)
	r, err := NewDir(c, formatter(), "levels")
	t.Nil(err)
	report(t, r)
	t.Equal(2, strings.Count(read(t, filepath.Join(c.Output, "levels", "level-1.items")), "\n"))
	t.Equal(1, strings.Count(read(t, filepath.Join(c.Output, "levels", "level-2.items")), "\n"))
	t.Equal("1 2\n2 1\n", read(t, filepath.Join(c.Output, "levels", "count")))
}

func TestCount(x *testing.T) {
	t := assert.New(x)
	c := output(x)
	r, err := NewCount(c, "count")
	t.Nil(err)
	report(t, r)
	t.Equal("3\n", read(t, filepath.Join(c.Output, "count")))
}

func TestStore(x *testing.T) {
	t := assert.New(x)
	b, err := itemsets.AnonBpTree()
	t.Nil(err)
	defer b.Delete()
	report(t, Into(b))
	t.Equal(3, b.Size())
	found := make([]int32, 0, 1)
	t.Nil(itemsets.Do(func() (itemsets.Iterator, error) { return b.Find(itemset.New(0, 1)) }, func(_ itemset.Itemset, count int32) error {
		found = append(found, count)
		return nil
	}))
	t.Equal([]int32{2}, found)

	path := filepath.Join(x.TempDir(), "frequent.bptree")
	r, err := NewStore(path)
	t.Nil(err)
	report(t, r)
	saved, err := itemsets.OpenBpTree(path)
	t.Nil(err)
	t.Equal(3, saved.Size())
	t.Nil(saved.Close())
}

func TestHeapProfile(x *testing.T) {
	t := assert.New(x)
	path := filepath.Join(x.TempDir(), "heap.pprof")
	r, err := NewHeapProfile(path, 1, 1)
	t.Nil(err)
	report(t, r)
	info, err := os.Stat(path)
	t.Nil(err)
	t.True(info.Size() > 0)
}
