package itemset

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

// Vocabulary interns item names. Ids are dense and assigned in the order
// names are first seen, so the canonical item order is fixed for the life
// of the vocabulary.
type Vocabulary struct {
	ids   *hashtable.LinearHash // types.String ==> Item
	names []string
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		ids:   hashtable.NewLinearHash(),
		names: make([]string, 0, 100),
	}
}

// SortedVocabulary interns the distinct names of rows in lexical order so
// that the canonical item order matches the name order.
func SortedVocabulary(rows [][]string) *Vocabulary {
	seen := make(map[string]bool)
	names := make([]string, 0, 100)
	for _, row := range rows {
		for _, name := range row {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	v := NewVocabulary()
	for _, name := range names {
		v.Intern(name)
	}
	return v
}

// Intern returns the id of name, assigning the next id if it is new.
func (v *Vocabulary) Intern(name string) Item {
	key := types.String(name)
	if v.ids.Has(key) {
		id, err := v.ids.Get(key)
		if err != nil {
			panic(err)
		}
		return id.(Item)
	}
	id := Item(len(v.names))
	if err := v.ids.Put(key, id); err != nil {
		panic(err)
	}
	v.names = append(v.names, name)
	return id
}

func (v *Vocabulary) Lookup(name string) (Item, bool) {
	key := types.String(name)
	if !v.ids.Has(key) {
		return 0, false
	}
	id, err := v.ids.Get(key)
	if err != nil {
		return 0, false
	}
	return id.(Item), true
}

func (v *Vocabulary) Name(item Item) string {
	if int(item) < 0 || int(item) >= len(v.names) {
		panic(errors.Errorf("item %d is not in the vocabulary (size %d)", item, len(v.names)))
	}
	return v.names[item]
}

func (v *Vocabulary) Size() int {
	return len(v.names)
}

// Itemset builds the canonical itemset for the named items. It panics on a
// name that was never interned.
func (v *Vocabulary) Itemset(names ...string) Itemset {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		item, has := v.Lookup(name)
		if !has {
			panic(errors.Errorf("unknown item %q", name))
		}
		items = append(items, item)
	}
	return New(items...)
}

// Names translates an itemset back to its item names, in canonical order.
func (v *Vocabulary) Names(s Itemset) []string {
	names := make([]string, 0, s.Size())
	for _, item := range s.items {
		names = append(names, v.Name(item))
	}
	return names
}
