package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/sapriori/lattice"
)

type Log struct {
	fmtr   lattice.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr lattice.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(n *lattice.Node) error {
	lr.count++
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v %v count %d support %.4g", lr.prefix, lr.count, lr.fmtr.FormatItemset(n.Items), n.Count, n.Support)
	} else {
		errors.Logf(lr.level, "%v %v count %d support %.4g", lr.count, lr.fmtr.FormatItemset(n.Items), n.Count, n.Support)
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
