package gen

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/sapriori/types/itemset"
)

func generator(t *assert.Assertions, seed int64) *Generator {
	g, err := NewGenerator(Groceries(), rand.New(rand.NewSource(seed)))
	t.Nil(err)
	return g
}

func TestTransactions(x *testing.T) {
	t := assert.New(x)
	g := generator(t, 1)
	def := Groceries()
	known := make(map[string]bool)
	for _, c := range def.Categories {
		for _, item := range c.Items {
			known[item] = true
		}
	}
	for _, tx := range g.Generate(500) {
		for i, item := range tx {
			t.True(known[item], item)
			if i > 0 {
				t.True(tx[i-1] < item, "sorted and duplicate free: %v", tx)
			}
		}
	}
}

func TestReproducible(x *testing.T) {
	t := assert.New(x)
	t.Equal(generator(t, 5).Generate(50), generator(t, 5).Generate(50))
}

func TestAssociations(x *testing.T) {
	t := assert.New(x)
	def := &Definition{
		Categories: []Category{{"a", []string{"x"}, 1}},
		Associations: []Association{
			{[]string{"x"}, "y", 1},
			{[]string{"z"}, "w", 1},
		},
	}
	g, err := NewGenerator(def, rand.New(rand.NewSource(1)))
	t.Nil(err)
	t.Equal([]string{"x", "y"}, g.Transaction())
}

func TestInvalidDefinition(x *testing.T) {
	t := assert.New(x)
	_, err := NewGenerator(&Definition{}, rand.New(rand.NewSource(1)))
	t.NotNil(err)
	_, err = NewGenerator(&Definition{Categories: []Category{{"a", []string{"x"}, 1.5}}}, rand.New(rand.NewSource(1)))
	t.NotNil(err)
	_, err = NewGenerator(&Definition{Categories: []Category{{"a", nil, .5}}}, rand.New(rand.NewSource(1)))
	t.NotNil(err)
	_, isStacked := err.(*errors.Error)
	t.True(isStacked, "%T", err)
}

func TestLoadDefinition(x *testing.T) {
	t := assert.New(x)
	path := filepath.Join(x.TempDir(), "def.yaml")
	t.Nil(os.WriteFile(path, []byte(`
categories:
  - name: a
    items: [x, y]
    probability: 1
associations:
  - if: [x]
    then: z
    probability: 0
`), 0644))
	def, err := LoadDefinition(path)
	t.Nil(err)
	t.Equal("a", def.Categories[0].Name)
	t.Equal([]string{"x"}, def.Associations[0].If)
	g, err := NewGenerator(def, rand.New(rand.NewSource(2)))
	t.Nil(err)
	for _, tx := range g.Generate(20) {
		t.NotContains(tx, "z")
		t.NotEmpty(tx)
	}
}

func TestAnalyze(x *testing.T) {
	t := assert.New(x)
	g := generator(t, 3)
	txs := [][]string{
		{"milk", "white bread"},
		{"butter", "milk", "soda", "white bread"},
		{"apples"},
	}
	s := g.Analyze(txs)
	t.Equal(3, s.Transactions)
	t.InDelta(7.0/3.0, s.AvgItems, 1e-9)
	t.Equal(txs[1], s.Largest)
	t.InDelta(2.0/3.0, s.Items["milk"], 1e-9)
	t.InDelta(1.0, s.Categories["dairy"], 1e-9, "milk twice and butter once")
	t.Equal([]Frequency{{"milk", 2.0 / 3.0}, {"white bread", 2.0 / 3.0}}, Top(s.Items, 2))
	s.Log()
	t.Equal(0, g.Analyze(nil).Transactions)
}

func TestJSONRoundTrip(x *testing.T) {
	t := assert.New(x)
	txs := generator(t, 4).Generate(30)
	var buf bytes.Buffer
	t.Nil(WriteJSON(&buf, txs))
	ds, err := itemset.NewJSONLoader().Load(func() (io.Reader, func()) {
		return &buf, func() {}
	})
	t.Nil(err)
	t.Equal(30, ds.Transactions.Len())
	for i, tx := range txs {
		t.Equal(tx, ds.Vocabulary.Names(itemset.New(ds.Transactions.Get(i)...)))
	}
}
