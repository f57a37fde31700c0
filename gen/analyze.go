package gen

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

type Frequency struct {
	Name      string
	Frequency float64
}

type Stats struct {
	Transactions int
	AvgItems     float64
	Largest      []string
	// fraction of transactions holding the item
	Items map[string]float64
	// item occurrences of the category over the transaction count
	Categories map[string]float64
}

// Analyze summarizes a dataset drawn from g.
func (g *Generator) Analyze(txs [][]string) *Stats {
	s := &Stats{
		Transactions: len(txs),
		Items:        make(map[string]float64),
		Categories:   make(map[string]float64),
	}
	if len(txs) == 0 {
		return s
	}
	total := 0
	for _, tx := range txs {
		total += len(tx)
		if len(tx) > len(s.Largest) {
			s.Largest = tx
		}
		for _, item := range tx {
			s.Items[item]++
			if c, has := g.category[item]; has {
				s.Categories[c]++
			}
		}
	}
	n := float64(len(txs))
	s.AvgItems = float64(total) / n
	for item := range s.Items {
		s.Items[item] /= n
	}
	for c := range s.Categories {
		s.Categories[c] /= n
	}
	return s
}

// Top is the n most frequent entries of freqs, most frequent first.
func Top(freqs map[string]float64, n int) []Frequency {
	top := make([]Frequency, 0, len(freqs))
	for name, f := range freqs {
		top = append(top, Frequency{name, f})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Frequency != top[j].Frequency {
			return top[i].Frequency > top[j].Frequency
		}
		return top[i].Name < top[j].Name
	})
	if n >= 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

func (s *Stats) Log() {
	errors.Logf("INFO", "transactions %d", s.Transactions)
	errors.Logf("INFO", "average items per transaction %.2f", s.AvgItems)
	errors.Logf("INFO", "largest transaction %v", s.Largest)
	for _, f := range Top(s.Categories, -1) {
		errors.Logf("INFO", "category %v %.1f%%", f.Name, 100*f.Frequency)
	}
	for _, f := range Top(s.Items, 10) {
		errors.Logf("INFO", "item %v %.1f%%", f.Name, 100*f.Frequency)
	}
}
