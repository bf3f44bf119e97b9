package types

import (
	"fmt"
	"strings"
)

// Lint runs the optional semantic checks over a built cluster and returns one
// error per finding. It does not stop on first error; all findings are
// collected.
//
// These checks are deliberately not part of builder validation: dangling
// dependency names, dangling route targets, duplicate names, and non-summing
// route weights are accepted by Build and passed through verbatim into the
// generated artifacts. Lint is the opt-in stricter pass for callers that want
// cross-referencing enforced.
func (c *Cluster) Lint() []error {
	var errs []error

	// Presence map over the flattened service namespace.
	declared := make(map[string]bool)
	for i := range c.Nodes {
		for j := range c.Nodes[i].Services {
			declared[c.Nodes[i].Services[j].Name] = true
		}
	}

	// Duplicate node names.
	nodeSeen := make(map[string]bool)
	for i := range c.Nodes {
		name := c.Nodes[i].Name
		if nodeSeen[name] {
			errs = append(errs, fmt.Errorf("duplicate node name %q", name))
		}
		nodeSeen[name] = true
	}

	// Duplicate service names, both within a node and across the flattened
	// namespace the compose artifact is keyed by.
	flatSeen := make(map[string]string) // service name -> node it first appeared on
	for i := range c.Nodes {
		node := &c.Nodes[i]
		inNode := make(map[string]bool)
		for j := range node.Services {
			name := node.Services[j].Name
			if inNode[name] {
				errs = append(errs, fmt.Errorf("duplicate service name %q on node %q", name, node.Name))
			} else if first, ok := flatSeen[name]; ok {
				errs = append(errs, fmt.Errorf("service name %q declared on both node %q and node %q; compose output keys services by name", name, first, node.Name))
			}
			inNode[name] = true
			if _, ok := flatSeen[name]; !ok {
				flatSeen[name] = node.Name
			}
		}
	}

	// Dangling references and route weight sums.
	for i := range c.Nodes {
		for j := range c.Nodes[i].Services {
			svc := &c.Nodes[i].Services[j]
			for _, dep := range svc.DependsOn {
				if !declared[dep] {
					errs = append(errs, fmt.Errorf("service %q depends on undeclared service %q", svc.Name, dep))
				}
			}
			if svc.Mesh == nil {
				continue
			}
			weightSum := 0
			for _, route := range svc.Mesh.Routes {
				if !declared[route.Target] {
					errs = append(errs, fmt.Errorf("service %q routes %q to undeclared target %q", svc.Name, route.Path, route.Target))
				}
				weightSum += route.Weight
			}
			if len(svc.Mesh.Routes) > 0 && weightSum != 100 {
				errs = append(errs, fmt.Errorf("service %q route weights sum to %d, not 100", svc.Name, weightSum))
			}
		}
	}

	// Dependency cycles, limited to edges between declared services.
	adj := make(map[string][]string)
	for i := range c.Nodes {
		for j := range c.Nodes[i].Services {
			svc := &c.Nodes[i].Services[j]
			if _, ok := adj[svc.Name]; !ok {
				adj[svc.Name] = nil
			}
			for _, dep := range svc.DependsOn {
				if declared[dep] {
					adj[svc.Name] = append(adj[svc.Name], dep)
				}
			}
		}
	}
	errs = append(errs, DetectDependencyCycles(adj)...)

	return errs
}

// Validate runs Lint and returns a single error if any findings exist.
func (c *Cluster) Validate() error {
	errs := c.Lint()
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return fmt.Errorf("cluster validation failed:\n%s", strings.Join(parts, "\n"))
}
