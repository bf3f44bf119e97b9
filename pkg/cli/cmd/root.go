package cmd

import (
	"fmt"
	"os"

	"github.com/rzbill/weave/internal/config"
	"github.com/rzbill/weave/pkg/log"
	"github.com/rzbill/weave/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weave",
	Short: "Weave - Declarative Cluster Topology Compiler",
	Long: `Weave compiles a declarative description of a multi-service cluster
topology (nodes, services, dependencies, environment, per-service mesh
policy) into two artifacts: a container-orchestration manifest and a
sidecar-proxy configuration document.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is specified, display the help
		if len(args) == 0 {
			cmd.Help()
			return
		}
	},
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.weave/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add global environment variables
	viper.SetEnvPrefix("WEAVE")
	viper.AutomaticEnv() // read in environment variables that match
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if verbose {
		log.GetDefaultLogger().SetLevel(log.DebugLevel)
	}
}

// loadConfig loads the CLI config honoring the --config flag and applies the
// configured log level and format to the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	if cfg.Log.Format == "json" {
		log.SetDefaultLogger(log.NewLogger(
			log.WithLevel(level),
			log.WithFormatter(&log.JSONFormatter{}),
		))
	} else {
		log.GetDefaultLogger().SetLevel(level)
	}
	return cfg, nil
}
