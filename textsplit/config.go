package textsplit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Alfex4936/textsplit/internal/growth"
)

// Config holds the growth policy for byte buffers and for view arrays.
//
// A TOML file looks like:
//
//	[bytes]
//	initial_capacity = 4096
//	growth_factor = 2.0
//	max_capacity = 67108864
//
//	[views]
//	initial_capacity = 4096
//	growth_factor = 2.0
type Config struct {
	Bytes Policy `json:"bytes" toml:"bytes" yaml:"bytes"`
	Views Policy `json:"views" toml:"views" yaml:"views"`
}

// DefaultConfig uses growth.DefaultPolicy for both kinds of buffer.
func DefaultConfig() Config {
	return Config{
		Bytes: growth.DefaultPolicy(),
		Views: growth.DefaultPolicy(),
	}
}

// Normalize clamps both policies.
func (c Config) Normalize() Config {
	c.Bytes = c.Bytes.Normalize()
	c.Views = c.Views.Normalize()
	return c
}

// LoadConfig reads a .toml, .yaml or .yml file on top of DefaultConfig, so
// keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("textsplit: config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("textsplit: config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("textsplit: config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: config %s: unsupported format (want .toml, .yaml or .yml)", ErrInvalidArgument, path)
	}
	return cfg.Normalize(), nil
}
