package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rzbill/weave/pkg/generator"
	"github.com/rzbill/weave/pkg/log"
	"github.com/rzbill/weave/pkg/types"
	"github.com/rzbill/weave/pkg/weavefile"
)

var (
	composeOut    string
	meshOut       string
	compileStrict bool
	compileQuiet  bool
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [weavefile]",
	Short: "Compile a topology declaration into its artifacts",
	Long: `Compile parses a Weavefile, validates the declared topology, and
generates both artifacts: the container-orchestration manifest and the
sidecar mesh policy document.

Examples:
  # Compile with default output paths
  weave compile topology.yaml

  # Choose artifact locations
  weave compile topology.yaml --compose-out deploy/docker-compose.yml --mesh-out deploy/mesh-config.yaml

  # Fail on semantic findings (dangling references, cycles, weight sums)
  weave compile --strict topology.yaml`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&composeOut, "compose-out", "", "path for the compose manifest (default from config)")
	compileCmd.Flags().StringVar(&meshOut, "mesh-out", "", "path for the mesh policy document (default from config)")
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "fail on lint findings instead of reporting them")
	compileCmd.Flags().BoolVarP(&compileQuiet, "quiet", "q", false, "suppress progress output, keep errors")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if composeOut == "" {
		composeOut = cfg.Output.ComposePath
	}
	if meshOut == "" {
		meshOut = cfg.Output.MeshPath
	}
	strict := compileStrict || cfg.Lint.Strict

	logger := log.GetDefaultLogger().
		WithComponent("compile").
		WithField("build_id", uuid.New().String())

	file, err := weavefile.Parse(args[0])
	if err != nil {
		return err
	}
	cluster, err := file.ToCluster()
	if err != nil {
		return err
	}
	logger.Debugf("built cluster with %d nodes, %d services", len(cluster.Nodes), len(cluster.Services()))

	findings := cluster.Lint()
	for _, finding := range findings {
		logger.Warnf("lint: %v", finding)
	}
	if strict && len(findings) > 0 {
		return fmt.Errorf("%d lint finding(s); refusing to generate artifacts in strict mode", len(findings))
	}

	if err := os.WriteFile(composeOut, []byte(generator.Compose(cluster)), 0644); err != nil {
		return fmt.Errorf("failed to write compose manifest: %w", err)
	}
	if err := os.WriteFile(meshOut, []byte(generator.MeshConfig(cluster)), 0644); err != nil {
		return fmt.Errorf("failed to write mesh config: %w", err)
	}
	logger.WithField("compose", composeOut).WithField("mesh", meshOut).Info("artifacts written")

	if !compileQuiet {
		renderCompileSummary(cluster)
		pterm.Success.Printf("Compiled %d service(s): %s, %s\n", len(cluster.Services()), composeOut, meshOut)
	}
	return nil
}

// renderCompileSummary prints a per-service table of the compiled topology.
func renderCompileSummary(cluster *types.Cluster) {
	table := pterm.DefaultTable.WithHasHeader(true)
	table = table.WithHeaderStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold))

	rows := pterm.TableData{{"NODE", "SERVICE", "PORT", "REPLICAS", "PROTOCOL", "MESH"}}
	for i := range cluster.Nodes {
		node := &cluster.Nodes[i]
		for j := range node.Services {
			svc := &node.Services[j]
			mesh := "-"
			if svc.Mesh != nil {
				mesh = fmt.Sprintf("%d route(s)", len(svc.Mesh.Routes))
			}
			rows = append(rows, []string{
				node.Name,
				svc.Name,
				strconv.Itoa(svc.Port),
				strconv.Itoa(svc.Replicas),
				svc.Protocol,
				mesh,
			})
		}
	}
	table.WithData(rows).Render()
}
