package itemset

import (
	"fmt"
	"strconv"
	"strings"
)

type Formatter struct {
	Dataset *Dataset
}

func (f *Formatter) FileExt() string {
	return ".items"
}

// FormatItemset renders {a b c} using item names when there is a
// vocabulary.
func (f *Formatter) FormatItemset(s Itemset) string {
	return "{" + strings.Join(f.Dataset.Names(s), " ") + "}"
}

// FormatPattern is one line of a patterns file: size, count, support and
// the itemset, tab separated.
func (f *Formatter) FormatPattern(s Itemset, count int, support float64) string {
	return fmt.Sprintf("%d\t%d\t%.6g\t%s", s.Size(), count, support, f.FormatItemset(s))
}

func itoa(item Item) string {
	return strconv.Itoa(int(item))
}
