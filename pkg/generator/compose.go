package generator

import (
	"fmt"

	"github.com/rzbill/weave/pkg/types"
)

// Compose manifest conventions. Every service binds the same fixed port
// inside its container; the declared service port is mapped onto it.
const (
	composeVersion    = "3.8"
	internalPort      = 8080
	buildContextShape = "../../%s-service"
	imageShape        = "%s-service:latest"
)

// Compose renders the container-orchestration manifest for a cluster.
//
// Services are emitted in flattened declaration order across all nodes; node
// grouping is informational only and has no effect on this artifact. Env and
// dependency lists keep their declaration order and are omitted entirely when
// empty.
func Compose(c *types.Cluster) string {
	var d doc
	d.line(0, fmt.Sprintf("version: '%s'", composeVersion))
	d.line(0, "services:")
	for _, svc := range c.Services() {
		writeComposeService(&d, svc)
	}
	return d.String()
}

func writeComposeService(d *doc, svc types.Service) {
	d.line(1, svc.Name+":")
	d.line(2, "build:")
	d.line(3, "context: "+fmt.Sprintf(buildContextShape, svc.Name))
	d.line(2, "image: "+fmt.Sprintf(imageShape, svc.Name))
	d.line(2, "ports:")
	d.line(3, fmt.Sprintf("- \"%d:%d\"", svc.Port, internalPort))
	if len(svc.Env) > 0 {
		d.line(2, "environment:")
		for _, env := range svc.Env {
			d.line(3, fmt.Sprintf("%s: %q", env.Key, env.Value))
		}
	}
	if len(svc.DependsOn) > 0 {
		d.line(2, "depends_on:")
		for _, dep := range svc.DependsOn {
			d.line(3, "- "+dep)
		}
	}
	d.blank()
}
