package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzbill/weave/pkg/types"
)

func TestBuild_ServiceDefaults(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("auth", nil)
	})

	cluster, err := cb.Build()
	require.NoError(t, err)
	require.Len(t, cluster.Nodes, 1)
	require.Len(t, cluster.Nodes[0].Services, 1)

	svc := cluster.Nodes[0].Services[0]
	assert.Equal(t, "auth", svc.Name)
	assert.Equal(t, types.DefaultPort, svc.Port)
	assert.Equal(t, types.DefaultReplicas, svc.Replicas)
	assert.Equal(t, types.DefaultProtocol, svc.Protocol)
	assert.Empty(t, svc.Env)
	assert.Empty(t, svc.DependsOn)
	assert.Nil(t, svc.Mesh, "service without a mesh block must stay mesh-unmanaged")
}

func TestBuild_PortOutOfRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536, 100000} {
		cb := NewCluster()
		cb.Node("local", func(n *NodeBuilder) {
			n.Service("auth", func(s *ServiceBuilder) {
				s.Port(port)
			})
		})

		cluster, err := cb.Build()
		require.Error(t, err, "port %d should be rejected", port)
		assert.Nil(t, cluster, "no partial cluster on validation failure")
		assert.True(t, types.IsInvalidConfigurationError(err))
		assert.Contains(t, err.Error(), `"auth"`, "error must name the offending service")
		assert.Contains(t, err.Error(), "port")
	}
}

func TestBuild_PortBoundaries(t *testing.T) {
	for _, port := range []int{1, 65535} {
		cb := NewCluster()
		cb.Node("local", func(n *NodeBuilder) {
			n.Service("edge", func(s *ServiceBuilder) {
				s.Port(port)
			})
		})
		_, err := cb.Build()
		assert.NoError(t, err, "port %d is valid", port)
	}
}

func TestBuild_ReplicasNotPositive(t *testing.T) {
	for _, replicas := range []int{0, -3} {
		cb := NewCluster()
		cb.Node("local", func(n *NodeBuilder) {
			n.Service("worker", func(s *ServiceBuilder) {
				s.Replicas(replicas)
			})
		})

		_, err := cb.Build()
		require.Error(t, err, "replicas %d should be rejected", replicas)
		assert.True(t, types.IsInvalidConfigurationError(err))
		assert.Contains(t, err.Error(), `"worker"`)
		assert.Contains(t, err.Error(), "replicas")
	}
}

func TestBuild_ValidationAbortsWholeCluster(t *testing.T) {
	cb := NewCluster()
	cb.Node("a", func(n *NodeBuilder) {
		n.Service("good", nil)
	})
	cb.Node("b", func(n *NodeBuilder) {
		n.Service("bad", func(s *ServiceBuilder) {
			s.Port(70000)
		})
	})

	cluster, err := cb.Build()
	require.Error(t, err)
	assert.Nil(t, cluster)
}

func TestBuild_EnvOrderAndLastWriteWins(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.Env("B", "1")
			s.Env("A", "2")
			s.Env("B", "3") // duplicate key: keeps position, takes last value
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)

	env := cluster.Nodes[0].Services[0].Env
	require.Len(t, env, 2)
	assert.Equal(t, types.EnvVar{Key: "B", Value: "3"}, env[0])
	assert.Equal(t, types.EnvVar{Key: "A", Value: "2"}, env[1])
}

func TestBuild_DependsOnAppendsAndKeepsDuplicates(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.DependsOn("db", "cache")
			s.DependsOn("db")
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "cache", "db"}, cluster.Nodes[0].Services[0].DependsOn)
}

func TestBuild_MeshDefaults(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.Mesh(nil)
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)

	mesh := cluster.Nodes[0].Services[0].Mesh
	require.NotNil(t, mesh)
	assert.Equal(t, types.DefaultRetries, mesh.Retries)
	assert.Equal(t, types.DefaultTimeoutMs, mesh.TimeoutMs)
	assert.Equal(t, types.DefaultRateLimitPerSecond, mesh.RateLimitPerSecond)
	assert.False(t, mesh.AuthRequired)
	assert.Empty(t, mesh.Routes)
}

func TestBuild_MeshRepeatedCallIsLastWriteWins(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.Mesh(func(m *MeshBuilder) {
				m.Retries(9)
				m.Route("/old", "gone")
			})
			s.Mesh(func(m *MeshBuilder) {
				m.TimeoutMs(250)
			})
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)

	mesh := cluster.Nodes[0].Services[0].Mesh
	require.NotNil(t, mesh)
	// Everything from the first call is discarded, including fields the
	// second call never touched.
	assert.Equal(t, types.DefaultRetries, mesh.Retries)
	assert.Equal(t, 250, mesh.TimeoutMs)
	assert.Empty(t, mesh.Routes)
}

func TestBuild_MeshRoutesPreserveOrderAndWeights(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("notification", func(s *ServiceBuilder) {
			s.Mesh(func(m *MeshBuilder) {
				m.RateLimitPerSecond(10)
				m.RouteWeighted("/v1", "notification-v1", 80)
				m.RouteWeighted("/v2", "notification-v2", 20)
			})
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)

	routes := cluster.Nodes[0].Services[0].Mesh.Routes
	require.Len(t, routes, 2)
	assert.Equal(t, types.Route{Path: "/v1", Target: "notification-v1", Weight: 80}, routes[0])
	assert.Equal(t, types.Route{Path: "/v2", Target: "notification-v2", Weight: 20}, routes[1])
}

func TestBuild_RouteDefaultWeight(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.Mesh(func(m *MeshBuilder) {
				m.Route("/", "api-v1")
			})
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultRouteWeight, cluster.Nodes[0].Services[0].Mesh.Routes[0].Weight)
}

func TestBuild_NodeAndServiceOrderPreserved(t *testing.T) {
	cb := NewCluster()
	cb.Node("n2", func(n *NodeBuilder) {
		n.Service("auth", nil)
		n.Service("user", nil)
	})
	cb.Node("n1", func(n *NodeBuilder) {
		n.Service("document", nil)
	})

	cluster, err := cb.Build()
	require.NoError(t, err)

	var names []string
	for _, svc := range cluster.Services() {
		names = append(names, svc.Name)
	}
	assert.Equal(t, []string{"auth", "user", "document"}, names, "declaration order, not lexical order")
	assert.Equal(t, "n2", cluster.Nodes[0].Name)
	assert.Equal(t, "n1", cluster.Nodes[1].Name)
}

func TestBuild_UnvalidatedFieldsPassThrough(t *testing.T) {
	cb := NewCluster()
	cb.Node("local", func(n *NodeBuilder) {
		n.Service("api", func(s *ServiceBuilder) {
			s.Protocol("carrier-pigeon")
			s.DependsOn("never-declared")
			s.Mesh(func(m *MeshBuilder) {
				m.RouteWeighted("/x", "also-never-declared", 7)
			})
		})
	})

	cluster, err := cb.Build()
	require.NoError(t, err, "protocol, dependency names, and targets are accepted uncritically")
	svc := cluster.Nodes[0].Services[0]
	assert.Equal(t, "carrier-pigeon", svc.Protocol)
	assert.Equal(t, []string{"never-declared"}, svc.DependsOn)
}
