package types

// Node represents a placement unit (host or machine) that groups services.
type Node struct {
	// Human-readable name for the node.
	Name string `json:"name" yaml:"name"`

	// Services placed on this node, in declaration order.
	Services []Service `json:"services,omitempty" yaml:"services,omitempty"`
}
