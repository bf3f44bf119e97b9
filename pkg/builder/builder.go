// Package builder provides the staged construction API for cluster
// topologies: mutable builders accumulate declarations, and a terminal Build
// call validates them and freezes the result into the immutable types model.
//
// Builders are exclusively owned by the call stack that created them and are
// discarded after Build; they are not safe for concurrent use and are never
// reused. The frozen Cluster shares no storage with the builders that
// produced it.
package builder

import (
	"github.com/rzbill/weave/pkg/types"
)

// ClusterBuilder accumulates node declarations for a cluster.
type ClusterBuilder struct {
	nodes []*NodeBuilder
}

// NewCluster creates an empty ClusterBuilder.
func NewCluster() *ClusterBuilder {
	return &ClusterBuilder{}
}

// Node declares a node and applies the supplied configuration function to its
// builder. The function runs immediately and completely before Node returns.
func (b *ClusterBuilder) Node(name string, fn func(*NodeBuilder)) *ClusterBuilder {
	nb := &NodeBuilder{name: name}
	if fn != nil {
		fn(nb)
	}
	b.nodes = append(b.nodes, nb)
	return b
}

// Build finalizes the cluster. Nodes are frozen in declaration order. Any
// validation failure in a service aborts the entire build with no partial
// result.
func (b *ClusterBuilder) Build() (*types.Cluster, error) {
	cluster := &types.Cluster{}
	for _, nb := range b.nodes {
		node, err := nb.build()
		if err != nil {
			return nil, err
		}
		cluster.Nodes = append(cluster.Nodes, node)
	}
	return cluster, nil
}

// NodeBuilder accumulates service declarations for one node.
type NodeBuilder struct {
	name     string
	services []*ServiceBuilder
}

// Service declares a service on this node and applies the supplied
// configuration function to its builder.
func (b *NodeBuilder) Service(name string, fn func(*ServiceBuilder)) *NodeBuilder {
	sb := newServiceBuilder(name)
	if fn != nil {
		fn(sb)
	}
	b.services = append(b.services, sb)
	return b
}

func (b *NodeBuilder) build() (types.Node, error) {
	node := types.Node{Name: b.name}
	for _, sb := range b.services {
		svc, err := sb.build()
		if err != nil {
			return types.Node{}, err
		}
		node.Services = append(node.Services, svc)
	}
	return node, nil
}

// ServiceBuilder accumulates the attributes of one service.
type ServiceBuilder struct {
	name      string
	port      int
	replicas  int
	protocol  string
	envKeys   []string
	envValues map[string]string
	dependsOn []string
	mesh      *MeshBuilder
}

func newServiceBuilder(name string) *ServiceBuilder {
	return &ServiceBuilder{
		name:      name,
		port:      types.DefaultPort,
		replicas:  types.DefaultReplicas,
		protocol:  types.DefaultProtocol,
		envValues: make(map[string]string),
	}
}

// Port sets the external port the service is reachable on.
func (b *ServiceBuilder) Port(port int) *ServiceBuilder {
	b.port = port
	return b
}

// Replicas sets the number of instances to run.
func (b *ServiceBuilder) Replicas(replicas int) *ServiceBuilder {
	b.replicas = replicas
	return b
}

// Protocol sets the free-form protocol tag. No enumeration is enforced.
func (b *ServiceBuilder) Protocol(protocol string) *ServiceBuilder {
	b.protocol = protocol
	return b
}

// Env declares an environment variable. Declaration order is preserved; a
// repeated key keeps its original position and takes the last value written.
func (b *ServiceBuilder) Env(key, value string) *ServiceBuilder {
	if _, ok := b.envValues[key]; !ok {
		b.envKeys = append(b.envKeys, key)
	}
	b.envValues[key] = value
	return b
}

// DependsOn appends dependency service names. Names are not resolved against
// declared services and duplicates are permitted.
func (b *ServiceBuilder) DependsOn(names ...string) *ServiceBuilder {
	b.dependsOn = append(b.dependsOn, names...)
	return b
}

// Mesh opts the service into mesh management and applies the supplied
// configuration function. Each call installs a fresh MeshBuilder: calling
// Mesh twice discards everything the first call configured (last write wins).
func (b *ServiceBuilder) Mesh(fn func(*MeshBuilder)) *ServiceBuilder {
	b.mesh = newMeshBuilder()
	if fn != nil {
		fn(b.mesh)
	}
	return b
}

// build validates and freezes the service. Port and replica count are the
// only fields with enforced invariants; protocol, env, dependency names, and
// mesh routes are accepted uncritically.
func (b *ServiceBuilder) build() (types.Service, error) {
	if b.port < 1 || b.port > 65535 {
		return types.Service{}, types.NewInvalidConfigurationError(
			"service %q: port %d is outside the valid range 1-65535", b.name, b.port)
	}
	if b.replicas <= 0 {
		return types.Service{}, types.NewInvalidConfigurationError(
			"service %q: replicas must be greater than zero, got %d", b.name, b.replicas)
	}

	svc := types.Service{
		Name:     b.name,
		Port:     b.port,
		Replicas: b.replicas,
		Protocol: b.protocol,
	}
	for _, key := range b.envKeys {
		svc.Env = append(svc.Env, types.EnvVar{Key: key, Value: b.envValues[key]})
	}
	svc.DependsOn = append(svc.DependsOn, b.dependsOn...)
	if b.mesh != nil {
		mesh := b.mesh.build()
		svc.Mesh = &mesh
	}
	return svc, nil
}

// MeshBuilder accumulates the sidecar policy of one service.
type MeshBuilder struct {
	retries            int
	timeoutMs          int
	rateLimitPerSecond int
	authRequired       bool
	routes             []types.Route
}

func newMeshBuilder() *MeshBuilder {
	return &MeshBuilder{
		retries:            types.DefaultRetries,
		timeoutMs:          types.DefaultTimeoutMs,
		rateLimitPerSecond: types.DefaultRateLimitPerSecond,
	}
}

// Retries sets the per-request retry attempts.
func (b *MeshBuilder) Retries(retries int) *MeshBuilder {
	b.retries = retries
	return b
}

// TimeoutMs sets the per-request timeout in milliseconds.
func (b *MeshBuilder) TimeoutMs(timeoutMs int) *MeshBuilder {
	b.timeoutMs = timeoutMs
	return b
}

// RateLimitPerSecond sets the admitted requests per second.
func (b *MeshBuilder) RateLimitPerSecond(limit int) *MeshBuilder {
	b.rateLimitPerSecond = limit
	return b
}

// AuthRequired sets whether the sidecar requires authenticated callers.
func (b *MeshBuilder) AuthRequired(required bool) *MeshBuilder {
	b.authRequired = required
	return b
}

// Route appends a route with the default traffic weight.
func (b *MeshBuilder) Route(path, target string) *MeshBuilder {
	return b.RouteWeighted(path, target, types.DefaultRouteWeight)
}

// RouteWeighted appends a route with an explicit traffic weight. Routes are
// never deduplicated and weights are not required to sum to 100.
func (b *MeshBuilder) RouteWeighted(path, target string, weight int) *MeshBuilder {
	b.routes = append(b.routes, types.Route{Path: path, Target: target, Weight: weight})
	return b
}

// build freezes the mesh policy. No validation is performed at this level.
func (b *MeshBuilder) build() types.Mesh {
	mesh := types.Mesh{
		Retries:            b.retries,
		TimeoutMs:          b.timeoutMs,
		RateLimitPerSecond: b.rateLimitPerSecond,
		AuthRequired:       b.authRequired,
	}
	mesh.Routes = append(mesh.Routes, b.routes...)
	return mesh
}
