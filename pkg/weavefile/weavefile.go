// Package weavefile parses the YAML declaration format for cluster
// topologies and feeds it through the builder layer, so a Weavefile and a
// programmatic declaration validate identically.
package weavefile

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/rzbill/weave/pkg/builder"
	"github.com/rzbill/weave/pkg/types"
)

// File represents a parsed Weavefile: one cluster declaration with nodes,
// services, and optional per-service mesh policy.
type File struct {
	Nodes []NodeSpec

	// Internal tracking for line numbers (not serialized)
	lineInfo map[string]int
	// Collection of parsing errors (not serialized)
	parseErrors []error
}

// NodeSpec is the declaration of one node.
type NodeSpec struct {
	Name     string
	Services []ServiceSpec

	Line int
}

// ServiceSpec is the declaration of one service. Pointer fields distinguish
// "omitted" from "declared as zero" so builder defaults apply only to
// genuinely omitted fields.
type ServiceSpec struct {
	Name      string
	Port      *int
	Replicas  *int
	Protocol  string
	Env       []types.EnvVar
	DependsOn []string
	Mesh      *MeshSpec

	Line int
}

// MeshSpec is the declaration of one service's sidecar policy.
type MeshSpec struct {
	Retries            *int
	TimeoutMs          *int
	RateLimitPerSecond *int
	AuthRequired       *bool
	Routes             []RouteSpec
}

// RouteSpec is the declaration of one mesh route.
type RouteSpec struct {
	Path   string
	Target string
	Weight *int
}

// Parse reads and parses a Weavefile from disk.
func Parse(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses Weavefile content from memory.
func ParseBytes(data []byte) (*File, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML structure: %w", err)
	}

	f := &File{lineInfo: make(map[string]int)}

	root := documentRoot(&node)
	if root == nil || root.Kind == 0 {
		// An empty document declares no cluster, same as an empty mapping.
		return nil, fmt.Errorf("weavefile must declare a top-level 'cluster' mapping")
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("weavefile must be a YAML mapping at the top level")
	}

	var clusterNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]
		if key.Value != "cluster" {
			return nil, fmt.Errorf("unknown top-level key '%s' at line %d", key.Value, key.Line)
		}
		clusterNode = val
	}
	if clusterNode == nil {
		return nil, fmt.Errorf("weavefile must declare a top-level 'cluster' mapping")
	}

	f.collectNodes(clusterNode)
	return f, nil
}

// documentRoot descends through the document node to the content root.
func documentRoot(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

func (f *File) collectNodes(clusterNode *yaml.Node) {
	if clusterNode.Kind != yaml.MappingNode {
		f.addParseError(fmt.Errorf("'cluster' must be a mapping at line %d", clusterNode.Line))
		return
	}
	for i := 0; i+1 < len(clusterNode.Content); i += 2 {
		key := clusterNode.Content[i]
		val := clusterNode.Content[i+1]
		if key.Value != "nodes" {
			f.addParseError(fmt.Errorf("unknown field '%s' in cluster specification at line %d", key.Value, key.Line))
			continue
		}
		if val.Kind != yaml.SequenceNode {
			f.addParseError(fmt.Errorf("'nodes' must be a sequence at line %d", val.Line))
			continue
		}
		for _, item := range val.Content {
			if item.Kind != yaml.MappingNode {
				f.addParseError(fmt.Errorf("node entry must be a mapping at line %d", item.Line))
				continue
			}
			f.Nodes = append(f.Nodes, f.parseNode(item))
		}
	}
}

func (f *File) parseNode(node *yaml.Node) NodeSpec {
	spec := NodeSpec{Line: node.Line}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		switch key.Value {
		case "name":
			spec.Name = val.Value
		case "services":
			if val.Kind != yaml.SequenceNode {
				f.addParseError(fmt.Errorf("'services' must be a sequence at line %d", val.Line))
				continue
			}
			for _, item := range val.Content {
				if item.Kind != yaml.MappingNode {
					f.addParseError(fmt.Errorf("service entry must be a mapping at line %d", item.Line))
					continue
				}
				spec.Services = append(spec.Services, f.parseService(item))
			}
		default:
			f.addParseError(fmt.Errorf("unknown field '%s' in node specification at line %d", key.Value, key.Line))
		}
	}
	f.lineInfo[makeLineKey("Node", "", spec.Name)] = node.Line
	for i := range spec.Services {
		f.lineInfo[makeLineKey("Service", spec.Name, spec.Services[i].Name)] = spec.Services[i].Line
	}
	return spec
}

func (f *File) parseService(node *yaml.Node) ServiceSpec {
	spec := ServiceSpec{Line: node.Line}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		switch key.Value {
		case "name":
			spec.Name = val.Value
		case "port":
			spec.Port = f.decodeInt(val, "port")
		case "replicas":
			spec.Replicas = f.decodeInt(val, "replicas")
		case "protocol":
			spec.Protocol = val.Value
		case "env":
			// Env is read at the node level so declaration order survives
			// into the generated artifacts.
			if val.Kind != yaml.MappingNode {
				f.addParseError(fmt.Errorf("'env' must be a mapping at line %d", val.Line))
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				spec.Env = append(spec.Env, types.EnvVar{
					Key:   val.Content[j].Value,
					Value: val.Content[j+1].Value,
				})
			}
		case "dependsOn":
			if val.Kind != yaml.SequenceNode {
				f.addParseError(fmt.Errorf("'dependsOn' must be a sequence at line %d", val.Line))
				continue
			}
			for _, item := range val.Content {
				spec.DependsOn = append(spec.DependsOn, item.Value)
			}
		case "mesh":
			if val.Kind != yaml.MappingNode {
				f.addParseError(fmt.Errorf("'mesh' must be a mapping at line %d", val.Line))
				continue
			}
			spec.Mesh = f.parseMesh(val)
		default:
			f.addParseError(fmt.Errorf("unknown field '%s' in service specification at line %d", key.Value, key.Line))
		}
	}
	return spec
}

func (f *File) parseMesh(node *yaml.Node) *MeshSpec {
	spec := &MeshSpec{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		switch key.Value {
		case "retries":
			spec.Retries = f.decodeInt(val, "retries")
		case "timeoutMs":
			spec.TimeoutMs = f.decodeInt(val, "timeoutMs")
		case "rateLimitPerSecond":
			spec.RateLimitPerSecond = f.decodeInt(val, "rateLimitPerSecond")
		case "authRequired":
			spec.AuthRequired = f.decodeBool(val, "authRequired")
		case "routes":
			if val.Kind != yaml.SequenceNode {
				f.addParseError(fmt.Errorf("'routes' must be a sequence at line %d", val.Line))
				continue
			}
			for _, item := range val.Content {
				if item.Kind != yaml.MappingNode {
					f.addParseError(fmt.Errorf("route entry must be a mapping at line %d", item.Line))
					continue
				}
				spec.Routes = append(spec.Routes, f.parseRoute(item))
			}
		default:
			f.addParseError(fmt.Errorf("unknown field '%s' in mesh specification at line %d", key.Value, key.Line))
		}
	}
	return spec
}

func (f *File) parseRoute(node *yaml.Node) RouteSpec {
	spec := RouteSpec{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		switch key.Value {
		case "path":
			spec.Path = val.Value
		case "target":
			spec.Target = val.Value
		case "weight":
			spec.Weight = f.decodeInt(val, "weight")
		default:
			f.addParseError(fmt.Errorf("unknown field '%s' in route specification at line %d", key.Value, key.Line))
		}
	}
	return spec
}

func (f *File) decodeInt(val *yaml.Node, field string) *int {
	var out int
	if err := val.Decode(&out); err != nil {
		f.addParseError(fmt.Errorf("'%s' must be an integer at line %d", field, val.Line))
		return nil
	}
	return &out
}

func (f *File) decodeBool(val *yaml.Node, field string) *bool {
	var out bool
	if err := val.Decode(&out); err != nil {
		f.addParseError(fmt.Errorf("'%s' must be a boolean at line %d", field, val.Line))
		return nil
	}
	return &out
}

// ToCluster drives the builder layer with the parsed declarations and returns
// the frozen cluster. Builder defaults and validation apply exactly as they
// would for a programmatic declaration. Parse errors must be resolved first.
func (f *File) ToCluster() (*types.Cluster, error) {
	if f.HasParseErrors() {
		return nil, fmt.Errorf("weavefile has parse errors:\n%s", joinErrors(f.parseErrors))
	}

	cb := builder.NewCluster()
	for i := range f.Nodes {
		nodeSpec := f.Nodes[i]
		cb.Node(nodeSpec.Name, func(nb *builder.NodeBuilder) {
			for j := range nodeSpec.Services {
				svcSpec := nodeSpec.Services[j]
				nb.Service(svcSpec.Name, func(sb *builder.ServiceBuilder) {
					applyService(sb, &svcSpec)
				})
			}
		})
	}
	return cb.Build()
}

func applyService(sb *builder.ServiceBuilder, spec *ServiceSpec) {
	if spec.Port != nil {
		sb.Port(*spec.Port)
	}
	if spec.Replicas != nil {
		sb.Replicas(*spec.Replicas)
	}
	if spec.Protocol != "" {
		sb.Protocol(spec.Protocol)
	}
	for _, env := range spec.Env {
		sb.Env(env.Key, env.Value)
	}
	if len(spec.DependsOn) > 0 {
		sb.DependsOn(spec.DependsOn...)
	}
	if spec.Mesh != nil {
		meshSpec := spec.Mesh
		sb.Mesh(func(mb *builder.MeshBuilder) {
			applyMesh(mb, meshSpec)
		})
	}
}

func applyMesh(mb *builder.MeshBuilder, spec *MeshSpec) {
	if spec.Retries != nil {
		mb.Retries(*spec.Retries)
	}
	if spec.TimeoutMs != nil {
		mb.TimeoutMs(*spec.TimeoutMs)
	}
	if spec.RateLimitPerSecond != nil {
		mb.RateLimitPerSecond(*spec.RateLimitPerSecond)
	}
	if spec.AuthRequired != nil {
		mb.AuthRequired(*spec.AuthRequired)
	}
	for _, route := range spec.Routes {
		if route.Weight != nil {
			mb.RouteWeighted(route.Path, route.Target, *route.Weight)
		} else {
			mb.Route(route.Path, route.Target)
		}
	}
}

// GetLineInfo returns the approximate line number for a declaration by
// kind/node/name.
func (f *File) GetLineInfo(kind, node, name string) (int, bool) {
	if f == nil || f.lineInfo == nil {
		return 0, false
	}
	line, ok := f.lineInfo[makeLineKey(kind, node, name)]
	return line, ok
}

func makeLineKey(kind, node, name string) string {
	return kind + "/" + node + "/" + name
}

func (f *File) addParseError(err error) {
	f.parseErrors = append(f.parseErrors, err)
}

// GetParseErrors returns all parsing errors collected during parsing.
func (f *File) GetParseErrors() []error {
	if f.parseErrors == nil {
		return []error{}
	}
	return f.parseErrors
}

// HasParseErrors returns true if any parsing errors were encountered.
func (f *File) HasParseErrors() bool {
	return len(f.parseErrors) > 0
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}
