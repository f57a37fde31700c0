package apriori

import (
	"math/rand"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/metrics"
	"github.com/timtadh/sapriori/miners"
	"github.com/timtadh/sapriori/types/itemset"
)

// Miner is the level wise sampled apriori miner. The active set, the
// boundary and the table are written only by the goroutine running Mine,
// once per level, after every parallel read of that level is done.
//
// A Miner mines once. Rand and Metrics may be replaced before calling Mine.
type Miner struct {
	Config       *config.Config
	Transactions *itemset.Transactions
	Reporter     miners.Reporter
	Rand         *rand.Rand
	Metrics      *metrics.Metrics
	z            float64
	workers      int
	seed         int64
	estimator    *Estimator
	active       *Active
	boundary     *Boundary
	table        *lattice.Table
	mined        bool
}

type levelResult struct {
	level      *lattice.Level
	infrequent []itemset.Itemset
	removed    int
}

// NewMiner validates the configuration and the transactions. rptr may be
// nil.
func NewMiner(conf *config.Config, txs *itemset.Transactions, rptr miners.Reporter) (*Miner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if txs == nil || txs.Len() == 0 {
		return nil, config.Invalid("there are no transactions to mine")
	}
	z, err := conf.ZScore()
	if err != nil {
		return nil, err
	}
	seed := conf.RandomSeed()
	m := &Miner{
		Config:       conf,
		Transactions: txs,
		Reporter:     rptr,
		Rand:         rand.New(rand.NewSource(seed)),
		z:            z,
		workers:      conf.Workers(),
		seed:         seed,
		active:       NewActive(txs.Len()),
		boundary:     NewBoundary(),
		table:        lattice.NewTable(),
	}
	return m, nil
}

func (m *Miner) Close() error {
	if m.Reporter != nil {
		return m.Reporter.Close()
	}
	return nil
}

// Active is the tracker of transactions still in play.
func (m *Miner) Active() *Active {
	return m.active
}

func (m *Miner) Boundary() *Boundary {
	return m.boundary
}

// Mine runs levels k = 1, 2, ... until a level has no candidates or no
// frequent itemsets, or MaxLevel is reached, and returns the frequent
// itemset table.
func (m *Miner) Mine() (*lattice.Table, error) {
	if m.mined {
		return nil, ErrAlreadyMined
	}
	m.mined = true
	m.estimator = NewEstimator(m.Transactions, m.Config.SampleSize, m.Config.MinSupport, m.z, m.Rand)
	errors.Logf("INFO", "mining %d transactions, min support %v, sample size %v, z %v, verify %v, workers %v, seed %v",
		m.Transactions.Len(), m.Config.MinSupport, m.Config.SampleSize, m.z, m.Config.Verify, m.workers, m.seed)
	start := time.Now()
	m.Metrics.StartLevel(1)
	m.Metrics.Shrunk(0, m.active.Len())
	r, err := m.first()
	if err != nil {
		return nil, err
	}
	if err := m.complete(r, start); err != nil {
		return nil, err
	}
	for k := 2; r.level.Size() > 0; k++ {
		if m.Config.MaxLevel > 0 && k > m.Config.MaxLevel {
			errors.Logf("INFO", "stopping at max level %d", m.Config.MaxLevel)
			break
		}
		// Not reached by this loop: the active set only empties when the
		// last count matched no candidate, which leaves the previous level
		// empty and has already stopped the loop. Kept as a guard for the
		// exhausted set decision.
		if m.active.Len() == 0 && !m.Config.Verify {
			errors.Logf("INFO", "level %d: %v, stopping with the %d levels completed", k, ErrExhaustedActiveSet, m.table.MaxK())
			break
		}
		start = time.Now()
		m.Metrics.StartLevel(k)
		gen, err := m.candidates(r.level)
		if err != nil {
			return nil, err
		}
		errors.Logf("DEBUG", "level %d: joined %d, boundary pruned %d, estimate pruned %d, candidates %d",
			k, gen.joined, gen.pruned, len(gen.rejected), len(gen.candidates))
		m.boundary.Add(gen.rejected...)
		if len(gen.candidates) == 0 {
			errors.Logf("INFO", "level %d: no candidates", k)
			break
		}
		r, err = m.support(k, gen.candidates)
		if err != nil {
			return nil, err
		}
		if err := m.complete(r, start); err != nil {
			return nil, err
		}
	}
	errors.Logf("INFO", "found %d frequent itemsets over %d levels, boundary %d, active %d",
		m.table.Size(), m.table.MaxK(), m.boundary.Size(), m.active.Len())
	return m.table, nil
}

// first counts every item over the active transactions. Level 1 does not
// shrink the active set.
func (m *Miner) first() (*levelResult, error) {
	counts := make(map[itemset.Item]int)
	for _, i := range m.active.Snapshot() {
		for _, item := range m.Transactions.Get(i) {
			counts[item]++
		}
	}
	singles := make([]itemset.Itemset, 0, len(counts))
	for item := range counts {
		singles = append(singles, itemset.New(item))
	}
	itemset.Sort(singles)
	c := make([]int, 0, len(singles))
	for _, s := range singles {
		c = append(c, counts[s.Item(0)])
	}
	m.Metrics.Candidate(metrics.Counted, len(singles))
	return m.classify(1, singles, c), nil
}

// classify splits counted candidates by the support threshold. The support
// ratio always uses the full transaction count.
func (m *Miner) classify(k int, candidates []itemset.Itemset, counts []int) *levelResult {
	total := float64(m.Transactions.Len())
	nodes := make([]*lattice.Node, 0, len(candidates))
	infrequent := make([]itemset.Itemset, 0, len(candidates))
	for c, s := range candidates {
		support := float64(counts[c]) / total
		if support >= m.Config.MinSupport {
			nodes = append(nodes, &lattice.Node{Items: s, Count: counts[c], Support: support})
		} else {
			infrequent = append(infrequent, s)
		}
	}
	level, err := lattice.NewLevel(k, nodes)
	if err != nil {
		// candidates are deduplicated and of size k
		panic(err)
	}
	return &levelResult{level: level, infrequent: infrequent}
}

// complete is the single write of a level: the boundary grows, the table
// gains the level (unless it is empty) and the reporter sees its itemsets.
func (m *Miner) complete(r *levelResult, start time.Time) error {
	m.boundary.Add(r.infrequent...)
	if r.level.Size() > 0 {
		if err := m.table.Append(r.level); err != nil {
			return err
		}
	}
	m.Metrics.Found(r.level.Size())
	m.Metrics.FinishLevel(time.Since(start).Seconds())
	errors.Logf("INFO", "level %d: frequent %d, infrequent %d, removed %d, active %d",
		r.level.K, r.level.Size(), len(r.infrequent), r.removed, m.active.Len())
	if m.Reporter == nil {
		return nil
	}
	for _, n := range r.level.Nodes {
		if err := m.Reporter.Report(n); err != nil {
			return err
		}
	}
	return nil
}
