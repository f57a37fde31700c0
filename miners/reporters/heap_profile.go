package reporters

import (
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/sapriori/lattice"
)

// HeapProfile snapshots the heap to path after the first `after` itemsets
// and then every `every` itemsets. Each snapshot replaces the last.
type HeapProfile struct {
	path  string
	after int
	every int
	count int
}

func NewHeapProfile(path string, after, every int) (*HeapProfile, error) {
	if every < 1 {
		every = 1
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &HeapProfile{path: path, after: after, every: every}, nil
}

func (hp *HeapProfile) Report(n *lattice.Node) error {
	hp.count++
	if hp.count <= hp.after || (hp.count-hp.after)%hp.every != 0 {
		return nil
	}
	return hp.write()
}

func (hp *HeapProfile) write() error {
	f, err := os.Create(hp.path)
	if err != nil {
		return err
	}
	if err := pprof.WriteHeapProfile(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (hp *HeapProfile) Close() error {
	return hp.write()
}
