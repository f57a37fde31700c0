package apriori

import (
	"math/rand"
)

import (
	"github.com/timtadh/sapriori/stats"
	"github.com/timtadh/sapriori/types/itemset"
)

// Estimator decides from a random sample of the active transactions whether
// an itemset might be frequent. It only produces false negatives: anything
// it lets through is counted exactly afterwards. An Estimator is not safe
// for concurrent use; Fork one per goroutine.
type Estimator struct {
	Transactions *itemset.Transactions
	SampleSize   int
	MinSupport   float64
	Z            float64
	rng          *rand.Rand
}

func NewEstimator(txs *itemset.Transactions, sampleSize int, minSupport, z float64, rng *rand.Rand) *Estimator {
	return &Estimator{
		Transactions: txs,
		SampleSize:   sampleSize,
		MinSupport:   minSupport,
		Z:            z,
		rng:          rng,
	}
}

// Fork copies the estimator with its own random source.
func (e *Estimator) Fork(seed int64) *Estimator {
	return NewEstimator(e.Transactions, e.SampleSize, e.MinSupport, e.Z, rand.New(rand.NewSource(seed)))
}

// Sample draws min(SampleSize, len(active)) distinct active indices.
func (e *Estimator) Sample(active []int) []int {
	return stats.SampleFrom(e.rng, e.SampleSize, active)
}

// Proportion is the fraction of the sampled transactions containing s.
func (e *Estimator) Proportion(s itemset.Itemset, sample []int) float64 {
	if len(sample) == 0 {
		return 0
	}
	hits := 0
	for _, i := range sample {
		if e.Transactions.Contains(i, s) {
			hits++
		}
	}
	return float64(hits) / float64(len(sample))
}

// Estimate is true when the upper confidence bound of the sampled support
// of s reaches MinSupport.
func (e *Estimator) Estimate(s itemset.Itemset, active []int) (bool, error) {
	if len(active) == 0 {
		return false, ErrExhaustedActiveSet
	}
	sample := e.Sample(active)
	p := e.Proportion(s, sample)
	return stats.UpperBound(p, len(sample), e.Z) >= e.MinSupport, nil
}

// EstimateSupport is Estimate as a free function.
func EstimateSupport(rng *rand.Rand, txs *itemset.Transactions, s itemset.Itemset, active []int, sampleSize int, minSupport, z float64) (bool, error) {
	return NewEstimator(txs, sampleSize, minSupport, z, rng).Estimate(s, active)
}
