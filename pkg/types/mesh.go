package types

// Defaults applied by the builder when a mesh policy omits a field.
const (
	DefaultRetries            = 1
	DefaultTimeoutMs          = 1000
	DefaultRateLimitPerSecond = 100

	// DefaultRouteWeight is the traffic share assigned to a route when none
	// is declared.
	DefaultRouteWeight = 100
)

// Mesh is the per-service sidecar-proxy policy. Its presence on a Service
// opts the service into mesh management.
type Mesh struct {
	// Number of retry attempts the sidecar performs per request.
	Retries int `json:"retries" yaml:"retries"`

	// Per-request timeout in milliseconds.
	TimeoutMs int `json:"timeoutMs" yaml:"timeoutMs"`

	// Requests per second admitted before the sidecar sheds load.
	RateLimitPerSecond int `json:"rateLimitPerSecond" yaml:"rateLimitPerSecond"`

	// Whether the sidecar requires authenticated callers.
	AuthRequired bool `json:"authRequired" yaml:"authRequired"`

	// Routes proxied by the sidecar, in declaration order.
	Routes []Route `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// Route maps a path prefix to a logical target service with a traffic-split
// weight. Targets are not resolved against declared services, and weights
// across a service's routes are not required to sum to 100; see Cluster.Lint.
type Route struct {
	Path   string `json:"path" yaml:"path"`
	Target string `json:"target" yaml:"target"`
	Weight int    `json:"weight" yaml:"weight"`
}
