// Package config loads the Weave CLI configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default artifact paths used when neither config file nor flags override them.
const (
	DefaultComposeOut = "docker-compose.yml"
	DefaultMeshOut    = "mesh-config.yaml"
)

type Output struct {
	ComposePath string `yaml:"compose_path" mapstructure:"compose_path"`
	MeshPath    string `yaml:"mesh_path" mapstructure:"mesh_path"`
}

type Lint struct {
	// Strict makes compile fail on lint findings, not just report them.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type Config struct {
	Output Output `yaml:"output" mapstructure:"output"`
	Lint   Lint   `yaml:"lint" mapstructure:"lint"`
	Log    Log    `yaml:"log" mapstructure:"log"`
}

func Default() *Config {
	return &Config{
		Output: Output{
			ComposePath: DefaultComposeOut,
			MeshPath:    DefaultMeshOut,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads the config from the given path, or from the default search
// locations when path is empty. A path the caller named must exist and parse;
// only the default search falls back to defaults when no file is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".") // Local development override
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".weave"))
		}
	}
	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
