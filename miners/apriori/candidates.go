package apriori

import (
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/metrics"
	"github.com/timtadh/sapriori/types/itemset"
)

// generated is the outcome of the candidate generator for one level.
type generated struct {
	candidates []itemset.Itemset
	// rejected by the estimator. They are believed infrequent.
	rejected []itemset.Itemset
	joined   int
	pruned   int
}

// Join forms every size k+1 union of two itemsets of prev (all of size k, in
// canonical order) sharing their first k-1 items. Because prev is sorted the
// itemsets sharing a prefix with prev[i] directly follow it.
func Join(prev []itemset.Itemset) []itemset.Itemset {
	joined := make([]itemset.Itemset, 0, len(prev))
	for i := range prev {
		joined = joinFrom(prev, i, joined)
	}
	return joined
}

func joinFrom(prev []itemset.Itemset, i int, joined []itemset.Itemset) []itemset.Itemset {
	for j := i + 1; j < len(prev); j++ {
		c, ok := prev[i].Join(prev[j])
		if !ok {
			break
		}
		joined = append(joined, c)
	}
	return joined
}

// candidates generates the level k candidates from the frequent level k-1.
// Joins are partitioned across the workers by striding over the outer index.
// Each partition prunes against the boundary and, unless verifying, against
// its own fork of the estimator. Partitions only read shared state.
func (m *Miner) candidates(prev *lattice.Level) (*generated, error) {
	sets := prev.Itemsets()
	active := m.active.Snapshot()
	workers := m.workers
	if workers > len(sets) {
		workers = len(sets)
	}
	parts := make([]*generated, workers)
	estimators := make([]*Estimator, workers)
	for w := range estimators {
		estimators[w] = m.estimator.Fork(m.Rand.Int63())
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			gen := &generated{
				candidates: make([]itemset.Itemset, 0, 10),
				rejected:   make([]itemset.Itemset, 0, 10),
			}
			parts[w] = gen
			joined := make([]itemset.Itemset, 0, 10)
			for i := w; i < len(sets); i += workers {
				joined = joinFrom(sets, i, joined[:0])
				gen.joined += len(joined)
				for _, c := range joined {
					if m.boundary.Prunes(c) {
						gen.pruned++
						continue
					}
					if !m.Config.Verify {
						maybe, err := estimators[w].Estimate(c, active)
						if err != nil {
							return err
						}
						if !maybe {
							gen.rejected = append(gen.rejected, c)
							continue
						}
					}
					gen.candidates = append(gen.candidates, c)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	gen := &generated{
		candidates: make([]itemset.Itemset, 0, 10),
		rejected:   make([]itemset.Itemset, 0, 10),
	}
	for _, part := range parts {
		gen.candidates = append(gen.candidates, part.candidates...)
		gen.rejected = append(gen.rejected, part.rejected...)
		gen.joined += part.joined
		gen.pruned += part.pruned
	}
	itemset.Sort(gen.candidates)
	gen.candidates = itemset.Dedup(gen.candidates)
	itemset.Sort(gen.rejected)
	gen.rejected = itemset.Dedup(gen.rejected)
	m.Metrics.Candidate(metrics.Generated, gen.joined)
	m.Metrics.Candidate(metrics.Boundary, gen.pruned)
	m.Metrics.Candidate(metrics.Estimate, len(gen.rejected))
	return gen, nil
}
