package apriori

import (
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/sapriori/metrics"
	"github.com/timtadh/sapriori/types/itemset"
)

// span is the half open range [lo, hi).
type span struct {
	lo, hi int
}

// partition splits [0, n) into at most parts contiguous, non-empty spans.
func partition(n, parts int) []span {
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	spans := make([]span, 0, parts)
	lo := 0
	for p := 0; p < parts; p++ {
		hi := lo + (n-lo)/(parts-p)
		spans = append(spans, span{lo, hi})
		lo = hi
	}
	return spans
}

// CountSupport scans the active transactions once. counts[c] is the number
// of active transactions containing candidates[c]. unmatched lists, in
// order, the active transactions that contain no candidate at all. The scan
// is split over workers contiguous ranges of active and the partial results
// are merged after every range is done, so the result does not depend on
// workers.
func CountSupport(txs *itemset.Transactions, candidates []itemset.Itemset, active []int, workers int) (counts []int, unmatched []int, err error) {
	spans := partition(len(active), workers)
	partCounts := make([][]int, len(spans))
	partUnmatched := make([][]int, len(spans))
	var g errgroup.Group
	for p, sp := range spans {
		g.Go(func() error {
			local := make([]int, len(candidates))
			miss := make([]int, 0, 10)
			for _, i := range active[sp.lo:sp.hi] {
				tx := txs.Get(i)
				matched := false
				for c, cand := range candidates {
					if cand.SubsetOf(tx) {
						local[c]++
						matched = true
					}
				}
				if !matched {
					miss = append(miss, i)
				}
			}
			partCounts[p] = local
			partUnmatched[p] = miss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	counts = make([]int, len(candidates))
	unmatched = make([]int, 0, 10)
	for p := range spans {
		for c, n := range partCounts[p] {
			counts[c] += n
		}
		unmatched = append(unmatched, partUnmatched[p]...)
	}
	return counts, unmatched, nil
}

// support counts the candidates exactly against the active set, applies the
// resulting removals to it and splits the candidates into the frequent level
// k and the infrequent rest.
func (m *Miner) support(k int, candidates []itemset.Itemset) (*levelResult, error) {
	counts, unmatched, err := CountSupport(m.Transactions, candidates, m.active.Snapshot(), m.workers)
	if err != nil {
		return nil, err
	}
	removed := m.active.Remove(unmatched)
	m.Metrics.Shrunk(removed, m.active.Len())
	m.Metrics.Candidate(metrics.Counted, len(candidates))
	r := m.classify(k, candidates, counts)
	r.removed = removed
	return r, nil
}
