package generator

import (
	"fmt"

	"github.com/rzbill/weave/pkg/types"
)

// MeshConfig renders the sidecar-proxy policy document for a cluster.
//
// Only mesh-managed services appear: a service with a nil Mesh is skipped
// entirely (the opt-out contract). Services are emitted in flattened
// declaration order; routes keep their declaration order and exact weights,
// with no renormalization. The routes key is omitted when a policy has none.
func MeshConfig(c *types.Cluster) string {
	var d doc
	d.line(0, "services:")
	for _, svc := range c.Services() {
		if svc.Mesh == nil {
			continue
		}
		writeMeshService(&d, svc)
	}
	return d.String()
}

func writeMeshService(d *doc, svc types.Service) {
	mesh := svc.Mesh
	d.line(1, svc.Name+":")
	d.line(2, fmt.Sprintf("port: %d", svc.Port))
	d.line(2, fmt.Sprintf("retries: %d", mesh.Retries))
	d.line(2, fmt.Sprintf("timeoutMs: %d", mesh.TimeoutMs))
	d.line(2, fmt.Sprintf("rateLimitPerSecond: %d", mesh.RateLimitPerSecond))
	d.line(2, fmt.Sprintf("authRequired: %t", mesh.AuthRequired))
	if len(mesh.Routes) > 0 {
		d.line(2, "routes:")
		for _, route := range mesh.Routes {
			d.line(3, fmt.Sprintf("- path: %q", route.Path))
			d.line(4, fmt.Sprintf("target: %q", route.Target))
			d.line(4, fmt.Sprintf("weight: %d", route.Weight))
		}
	}
	d.blank()
}
