package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rzbill/weave/pkg/weavefile"
)

var (
	lintQuiet bool
)

// Color setup for formatting
var (
	errorColor   = color.New(color.FgRed, color.Bold)
	fileColor    = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint [weavefile...]",
	Short: "Validate topology declarations",
	Long: `Lint parses one or more Weavefiles and reports every finding:
parse errors, structural invariant violations (port range, replica count),
and the semantic checks the compiler itself leaves unenforced — dangling
dependency names, dangling route targets, duplicate node or service names,
route weight sums, and dependency cycles.

Examples:
  # Lint a single file
  weave lint topology.yaml

  # Lint multiple files
  weave lint dev.yaml prod.yaml

  # Only show findings, no success messages
  weave lint --quiet topology.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLint,
}

func init() {
	lintCmd.Flags().BoolVarP(&lintQuiet, "quiet", "q", false, "only show findings, no progress or success messages")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one weavefile is required")
	}

	totalFindings := 0
	for _, filename := range args {
		file, err := weavefile.Parse(filename)
		if err != nil {
			errorColor.Fprintf(os.Stderr, "error: ")
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			totalFindings++
			continue
		}

		findings := file.Lint()
		if len(findings) == 0 {
			if !lintQuiet {
				successColor.Print("ok ")
				fileColor.Println(filename)
			}
			continue
		}

		fileColor.Println(filename)
		for _, finding := range findings {
			errorColor.Print("  error: ")
			fmt.Println(finding)
		}
		totalFindings += len(findings)
	}

	if totalFindings > 0 {
		return fmt.Errorf("%d finding(s)", totalFindings)
	}
	if !lintQuiet {
		successColor.Printf("All %d file(s) passed\n", len(args))
	}
	return nil
}
