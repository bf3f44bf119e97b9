package types

// Default values applied by the builder when a service omits a field.
const (
	// DefaultPort is the external port assigned when none is declared.
	DefaultPort = 80

	// DefaultReplicas is the replica count assigned when none is declared.
	DefaultReplicas = 1

	// DefaultProtocol is the protocol tag assigned when none is declared.
	// The protocol is a free-form transport/API style identifier and is never
	// validated against an enumeration.
	DefaultProtocol = "http"
)

// Service is a single deployable unit with network, scaling, and dependency
// attributes. Its name is the cross-reference key used by dependency lists
// and mesh route targets.
type Service struct {
	// Human-readable name for the service, unique within its node.
	Name string `json:"name" yaml:"name"`

	// External port the service is reachable on (1-65535).
	Port int `json:"port" yaml:"port"`

	// Number of instances to run (> 0).
	Replicas int `json:"replicas" yaml:"replicas"`

	// Free-form protocol tag, e.g. "http", "grpc" or "ws".
	Protocol string `json:"protocol" yaml:"protocol"`

	// Environment variables in declaration order.
	Env []EnvVar `json:"env,omitempty" yaml:"env,omitempty"`

	// Names of services this service depends on, in declaration order.
	// References are not resolved against declared services; see Cluster.Lint.
	DependsOn []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`

	// Mesh is the sidecar policy for this service. A nil Mesh means the
	// service is mesh-unmanaged and is skipped by the mesh config generator.
	Mesh *Mesh `json:"mesh,omitempty" yaml:"mesh,omitempty"`
}

// EnvVar is a single environment variable.
//
// Env is kept as an ordered slice rather than a map so that generated
// artifacts are byte-identical across runs and follow declaration order.
type EnvVar struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}
