package weavefile

import (
	"fmt"

	"github.com/rzbill/weave/pkg/types"
)

// Lint validates all declarations in the file and returns a list of errors.
// It does not stop on first error; all findings are collected, annotated with
// line numbers where known.
//
// Findings come from three layers: parse errors, the builder's structural
// invariants re-checked per service so each carries its declaration line, and
// the cluster-level semantic checks (dangling references, duplicates, weight
// sums, cycles) that Build deliberately leaves unenforced.
func (f *File) Lint() []error {
	var errs []error

	// Include parsing errors first
	if f.HasParseErrors() {
		errs = append(errs, f.GetParseErrors()...)
	}

	// Per-service structural invariants, annotated with the declaration line.
	// These mirror ServiceBuilder validation exactly; a file that passes this
	// stage never fails Build.
	for i := range f.Nodes {
		node := &f.Nodes[i]
		for j := range node.Services {
			svc := &node.Services[j]
			for _, err := range lintService(svc) {
				if line, ok := f.GetLineInfo("Service", node.Name, svc.Name); ok {
					errs = append(errs, fmt.Errorf("service %q (node %q) at line %d: %w", svc.Name, node.Name, line, err))
				} else {
					errs = append(errs, fmt.Errorf("service %q (node %q): %w", svc.Name, node.Name, err))
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}

	// Semantic checks run on the frozen cluster.
	cluster, err := f.ToCluster()
	if err != nil {
		return append(errs, err)
	}
	return cluster.Lint()
}

func lintService(svc *ServiceSpec) []error {
	var errs []error
	if svc.Name == "" {
		errs = append(errs, fmt.Errorf("service name is required"))
	}
	if svc.Port != nil && (*svc.Port < 1 || *svc.Port > 65535) {
		errs = append(errs, types.NewInvalidConfigurationError("port %d is outside the valid range 1-65535", *svc.Port))
	}
	if svc.Replicas != nil && *svc.Replicas <= 0 {
		errs = append(errs, types.NewInvalidConfigurationError("replicas must be greater than zero, got %d", *svc.Replicas))
	}
	return errs
}
