package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
)

// Count writes the number of frequent itemsets to a file when closed.
type Count struct {
	config   *config.Config
	count    int
	filename string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	r := &Count{
		config:   c,
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(n *lattice.Node) error {
	r.count++
	return nil
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
