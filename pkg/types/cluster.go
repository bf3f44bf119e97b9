// Package types defines the core data structures for the Weave topology compiler.
package types

// Cluster is the root of a declared topology: an ordered collection of nodes.
//
// A Cluster is immutable once returned by a builder. It carries no identity of
// its own beyond its children; two clusters with the same nodes are
// interchangeable inputs to the generators.
type Cluster struct {
	// Nodes that are part of this cluster, in declaration order.
	Nodes []Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// Services returns every service in the cluster flattened across nodes,
// preserving node and service declaration order. Node boundaries carry no
// meaning for the generated artifacts; this flattened view is the order both
// generators emit in.
func (c *Cluster) Services() []Service {
	var out []Service
	for i := range c.Nodes {
		out = append(out, c.Nodes[i].Services...)
	}
	return out
}
