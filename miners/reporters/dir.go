package reporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
)

// Dir writes each level to its own file, level-<k><ext>, in a directory
// under the output directory, and the number of itemsets per level to a
// count file when closed.
type Dir struct {
	config *config.Config
	fmt    lattice.Formatter
	dir    string
	k      int
	counts []int
	level  io.WriteCloser
}

func NewDir(c *config.Config, fmt lattice.Formatter, dirname string) (*Dir, error) {
	dir := c.OutputFile(dirname)
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return nil, err
	}
	r := &Dir{
		config: c,
		fmt:    fmt,
		dir:    dir,
		counts: make([]int, 0, 10),
	}
	return r, nil
}

func (r *Dir) Report(n *lattice.Node) error {
	if k := n.Items.Size(); k != r.k {
		if err := r.closeLevel(); err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(r.dir, fmt.Sprintf("level-%d%s", k, r.fmt.FileExt())))
		if err != nil {
			return err
		}
		r.level = f
		r.k = k
		for len(r.counts) < k {
			r.counts = append(r.counts, 0)
		}
	}
	r.counts[r.k-1]++
	_, err := fmt.Fprintln(r.level, r.fmt.FormatPattern(n.Items, n.Count, n.Support))
	return err
}

func (r *Dir) closeLevel() error {
	if r.level == nil {
		return nil
	}
	err := r.level.Close()
	r.level = nil
	return err
}

func (r *Dir) Close() error {
	if err := r.closeLevel(); err != nil {
		return err
	}
	count, err := os.Create(filepath.Join(r.dir, "count"))
	if err != nil {
		return err
	}
	defer count.Close()
	for k, c := range r.counts {
		if _, err := fmt.Fprintf(count, "%d %d\n", k+1, c); err != nil {
			return err
		}
	}
	return nil
}
