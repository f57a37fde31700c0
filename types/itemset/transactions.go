package itemset

import (
	"github.com/timtadh/data-structures/errors"
)

// Transactions is the immutable, indexable transaction store. Each row is
// held canonicalized (sorted, duplicate free). Rows returned by Get must
// not be modified.
type Transactions struct {
	rows [][]Item
}

// NewTransactions copies and canonicalizes rows.
func NewTransactions(rows [][]Item) *Transactions {
	t := &Transactions{
		rows: make([][]Item, 0, len(rows)),
	}
	for _, row := range rows {
		c := make([]Item, len(row))
		copy(c, row)
		t.rows = append(t.rows, canonical(c))
	}
	return t
}

func (t *Transactions) Len() int {
	return len(t.rows)
}

// Get returns transaction i. An out of range index is a programming error
// and panics.
func (t *Transactions) Get(i int) []Item {
	if i < 0 || i >= len(t.rows) {
		panic(errors.Errorf("transaction index %d out of range [0, %d)", i, len(t.rows)))
	}
	return t.rows[i]
}

// Contains reports whether transaction i contains every item of s.
func (t *Transactions) Contains(i int, s Itemset) bool {
	return s.SubsetOf(t.Get(i))
}

// Indices returns 0..Len()-1.
func (t *Transactions) Indices() []int {
	idxs := make([]int, len(t.rows))
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}

// Dataset is a loaded transaction store together with the vocabulary that
// names its items. Vocabulary is nil when items are plain integers.
type Dataset struct {
	Transactions *Transactions
	Vocabulary   *Vocabulary
}

// FromNames interns every name (lexical canonical order) and builds the
// dataset.
func FromNames(rows [][]string) *Dataset {
	v := SortedVocabulary(rows)
	txs := make([][]Item, 0, len(rows))
	for _, row := range rows {
		tx := make([]Item, 0, len(row))
		for _, name := range row {
			tx = append(tx, v.Intern(name))
		}
		txs = append(txs, tx)
	}
	return &Dataset{
		Transactions: NewTransactions(txs),
		Vocabulary:   v,
	}
}

// Names renders an itemset with item names when the dataset has a
// vocabulary and as integers otherwise.
func (d *Dataset) Names(s Itemset) []string {
	if d.Vocabulary != nil {
		return d.Vocabulary.Names(s)
	}
	names := make([]string, 0, s.Size())
	for _, item := range s.items {
		names = append(names, itoa(item))
	}
	return names
}
