package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/weave/pkg/version"
)

var versionJSON bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderVersion(versionJSON)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// renderVersion formats the build information as a one-line string or, for
// tooling, as a JSON object.
func renderVersion(asJSON bool) (string, error) {
	if asJSON {
		out, err := json.Marshal(version.Map())
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return version.Info(), nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
	rootCmd.AddCommand(versionCmd)
}
