package reporters

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/lattice"
)

// File writes one line per frequent itemset to the patterns file in the
// output directory.
type File struct {
	config   *config.Config
	fmt      lattice.Formatter
	patterns io.WriteCloser
}

func NewFile(c *config.Config, fmt lattice.Formatter, patternsFilename string) (*File, error) {
	patterns, err := os.Create(c.OutputFile(patternsFilename + fmt.FileExt()))
	if err != nil {
		return nil, err
	}
	r := &File{
		config:   c,
		fmt:      fmt,
		patterns: patterns,
	}
	return r, nil
}

func (r *File) Report(n *lattice.Node) error {
	_, err := fmt.Fprintln(r.patterns, r.fmt.FormatPattern(n.Items, n.Count, n.Support))
	return err
}

func (r *File) Close() error {
	return r.patterns.Close()
}
