package itemset

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

// Item is an opaque item identifier. Items are totally ordered by value and
// that order is the canonical order of every Itemset.
type Item int32

// Itemset is a set of unique items held in canonical (strictly increasing)
// order. The zero value is the empty itemset. Itemsets are immutable: every
// operation that changes membership returns a new Itemset.
type Itemset struct {
	items []Item
}

// New builds the canonical itemset holding the given items. Duplicates are
// dropped. The argument is not retained.
func New(items ...Item) Itemset {
	c := make([]Item, len(items))
	copy(c, items)
	return Itemset{items: canonical(c)}
}

// FromSorted wraps items that are already strictly increasing. It panics if
// they are not, because every join and containment test depends on it.
func FromSorted(items []Item) Itemset {
	for i := 1; i < len(items); i++ {
		if items[i-1] >= items[i] {
			panic(errors.Errorf("items %v are not in canonical order", items))
		}
	}
	return Itemset{items: items}
}

func canonical(items []Item) []Item {
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	j := 0
	for i := 0; i < len(items); i++ {
		if j > 0 && items[j-1] == items[i] {
			continue
		}
		items[j] = items[i]
		j++
	}
	return items[:j]
}

func (s Itemset) Size() int {
	return len(s.items)
}

// Items returns a copy of the items in canonical order.
func (s Itemset) Items() []Item {
	c := make([]Item, len(s.items))
	copy(c, s.items)
	return c
}

// Item returns the i-th item in canonical order.
func (s Itemset) Item(i int) Item {
	return s.items[i]
}

func (s Itemset) Last() Item {
	return s.items[len(s.items)-1]
}

func (s Itemset) Has(item Item) bool {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= item })
	return i < len(s.items) && s.items[i] == item
}

// SubsetOf reports whether every item of s is in tx. tx must be sorted
// ascending (transactions are canonicalized on load).
func (s Itemset) SubsetOf(tx []Item) bool {
	if len(s.items) > len(tx) {
		return false
	}
	j := 0
	for _, item := range s.items {
		for j < len(tx) && tx[j] < item {
			j++
		}
		if j >= len(tx) || tx[j] != item {
			return false
		}
		j++
	}
	return true
}

// Subset reports whether s is a subset of o.
func (s Itemset) Subset(o Itemset) bool {
	return s.SubsetOf(o.items)
}

// SharesPrefix reports whether s and o have the same size k and agree on
// their first k-1 items.
func (s Itemset) SharesPrefix(o Itemset) bool {
	if len(s.items) != len(o.items) || len(s.items) == 0 {
		return false
	}
	for i := 0; i < len(s.items)-1; i++ {
		if s.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Join forms the size k+1 union of two size k itemsets which share their
// first k-1 items and differ in the last. ok is false when they cannot be
// joined.
func (s Itemset) Join(o Itemset) (joined Itemset, ok bool) {
	if !s.SharesPrefix(o) || s.Last() == o.Last() {
		return Itemset{}, false
	}
	items := make([]Item, len(s.items)+1)
	copy(items, s.items)
	a, b := s.Last(), o.Last()
	if b < a {
		a, b = b, a
	}
	items[len(items)-2] = a
	items[len(items)-1] = b
	return Itemset{items: items}, true
}

func (s Itemset) Add(item Item) Itemset {
	if s.Has(item) {
		return s
	}
	items := make([]Item, 0, len(s.items)+1)
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] > item })
	items = append(items, s.items[:i]...)
	items = append(items, item)
	items = append(items, s.items[i:]...)
	return Itemset{items: items}
}

func (s Itemset) Delete(item Item) Itemset {
	if !s.Has(item) {
		return s
	}
	items := make([]Item, 0, len(s.items)-1)
	for _, x := range s.items {
		if x != item {
			items = append(items, x)
		}
	}
	return Itemset{items: items}
}

// Parents returns every subset of size k-1, in canonical order.
func (s Itemset) Parents() []Itemset {
	if len(s.items) == 0 {
		return nil
	}
	parents := make([]Itemset, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		items := make([]Item, 0, len(s.items)-1)
		items = append(items, s.items[:i]...)
		items = append(items, s.items[i+1:]...)
		parents = append(parents, Itemset{items: items})
	}
	return parents
}

// Compare orders itemsets lexicographically by item, shorter first on a tie.
func (s Itemset) Compare(o Itemset) int {
	for i := 0; i < len(s.items) && i < len(o.items); i++ {
		if s.items[i] < o.items[i] {
			return -1
		} else if s.items[i] > o.items[i] {
			return 1
		}
	}
	switch {
	case len(s.items) < len(o.items):
		return -1
	case len(s.items) > len(o.items):
		return 1
	}
	return 0
}

// Label is the big-endian encoding: size followed by each item.
func (s Itemset) Label() []byte {
	bytes := make([]byte, 4*(len(s.items)+1))
	binary.BigEndian.PutUint32(bytes[0:4], uint32(len(s.items)))
	off := 4
	for _, item := range s.items {
		binary.BigEndian.PutUint32(bytes[off:off+4], uint32(int32(item)))
		off += 4
	}
	return bytes
}

func FromLabel(bytes []byte) (Itemset, error) {
	if len(bytes) < 4 {
		return Itemset{}, errors.Errorf("itemset label too short (%d bytes)", len(bytes))
	}
	size := int(binary.BigEndian.Uint32(bytes[0:4]))
	if len(bytes) != 4*(size+1) {
		return Itemset{}, errors.Errorf("itemset label of %d bytes does not hold %d items", len(bytes), size)
	}
	items := make([]Item, 0, size)
	for off := 4; off < len(bytes); off += 4 {
		items = append(items, Item(int32(binary.BigEndian.Uint32(bytes[off:off+4]))))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1] >= items[i] {
			return Itemset{}, errors.Errorf("itemset label %v is not canonical", items)
		}
	}
	return Itemset{items: items}, nil
}

func (s Itemset) Equals(o types.Equatable) bool {
	switch b := o.(type) {
	case Itemset:
		return s.Compare(b) == 0
	case *Itemset:
		return s.Compare(*b) == 0
	default:
		return false
	}
}

func (s Itemset) Less(o types.Sortable) bool {
	switch b := o.(type) {
	case Itemset:
		return s.Compare(b) < 0
	case *Itemset:
		return s.Compare(*b) < 0
	default:
		return false
	}
}

func (s Itemset) Hash() int {
	return types.ByteSlice(s.Label()).Hash()
}

// Key is the label as a string, usable as a Go map key.
func (s Itemset) Key() string {
	return string(s.Label())
}

func (s Itemset) String() string {
	parts := make([]string, 0, len(s.items))
	for _, item := range s.items {
		parts = append(parts, fmt.Sprint(int32(item)))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Sort sorts itemsets into canonical order.
func Sort(sets []Itemset) {
	sort.Slice(sets, func(i, j int) bool { return sets[i].Compare(sets[j]) < 0 })
}

// Dedup removes adjacent duplicates from a sorted slice.
func Dedup(sets []Itemset) []Itemset {
	j := 0
	for i := 0; i < len(sets); i++ {
		if j > 0 && sets[j-1].Compare(sets[i]) == 0 {
			continue
		}
		sets[j] = sets[i]
		j++
	}
	return sets[:j]
}
