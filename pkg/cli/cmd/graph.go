package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rzbill/weave/pkg/weavefile"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [weavefile]",
	Short: "Render the service dependency graph",
	Long: `Graph parses a Weavefile and renders the declared service
dependencies as a tree, grouped by node. Dependencies on undeclared services
are shown as-is; use 'weave lint' to surface them as findings.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	file, err := weavefile.Parse(args[0])
	if err != nil {
		return err
	}
	cluster, err := file.ToCluster()
	if err != nil {
		return err
	}

	root := pterm.TreeNode{Text: "cluster"}
	for i := range cluster.Nodes {
		node := &cluster.Nodes[i]
		nodeLeaf := pterm.TreeNode{Text: fmt.Sprintf("node %s", node.Name)}
		for j := range node.Services {
			svc := &node.Services[j]
			svcLeaf := pterm.TreeNode{Text: svc.Name}
			for _, dep := range svc.DependsOn {
				svcLeaf.Children = append(svcLeaf.Children, pterm.TreeNode{Text: "depends on " + dep})
			}
			if svc.Mesh != nil {
				for _, route := range svc.Mesh.Routes {
					svcLeaf.Children = append(svcLeaf.Children,
						pterm.TreeNode{Text: fmt.Sprintf("route %s -> %s (weight %d)", route.Path, route.Target, route.Weight)})
				}
			}
			nodeLeaf.Children = append(nodeLeaf.Children, svcLeaf)
		}
		root.Children = append(root.Children, nodeLeaf)
	}

	return pterm.DefaultTree.WithRoot(root).Render()
}
