package reporters

import (
	"github.com/timtadh/sapriori/lattice"
)

type Collector struct {
	Nodes []*lattice.Node
}

func (c *Collector) Report(n *lattice.Node) error {
	c.Nodes = append(c.Nodes, n)
	return nil
}

func (c *Collector) Close() error {
	return nil
}
