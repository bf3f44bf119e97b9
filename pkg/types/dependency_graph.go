package types

// Generic helpers for building and validating dependency graphs across services

import (
	"fmt"
	"sort"
	"strings"
)

// DetectDependencyCycles runs cycle detection on an adjacency list of service
// dependency edges. The adjacency list maps service names to the names of the
// services they depend on. It returns one error per cycle detected with a
// human-readable path; returns an empty slice if no cycles.
func DetectDependencyCycles(adj map[string][]string) []error {
	const (
		colorWhite = 0 // unvisited
		colorGray  = 1 // visiting
		colorBlack = 2 // visited
	)
	color := make(map[string]int)
	stack := make([]string, 0, len(adj))
	var cycleErrs []error

	var dfs func(u string)
	dfs = func(u string) {
		color[u] = colorGray
		stack = append(stack, u)
		for _, v := range adj[u] {
			if color[v] == colorGray {
				// Back edge: the cycle is the stack segment from the first
				// occurrence of v. Copy it out; the stack keeps unwinding
				// normally so nodes that merely reach this cycle are never
				// folded into it.
				start := 0
				for i := range stack {
					if stack[i] == v {
						start = i
						break
					}
				}
				path := make([]string, 0, len(stack)-start+1)
				path = append(path, stack[start:]...)
				path = append(path, v)
				cycleErrs = append(cycleErrs, fmt.Errorf("dependency cycle detected: %s", strings.Join(path, " -> ")))
				continue
			}
			if color[v] == colorWhite {
				dfs(v)
			}
		}
		color[u] = colorBlack
		stack = stack[:len(stack)-1]
	}

	// Iterate in a stable order so repeated lint runs report cycles
	// identically.
	keys := make([]string, 0, len(adj))
	for u := range adj {
		keys = append(keys, u)
	}
	sort.Strings(keys)
	for _, u := range keys {
		if color[u] == colorWhite {
			dfs(u)
		}
	}
	return cycleErrs
}
