package convert

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pass set selectors.
const (
	PassesRewrite = "rewrite"
	PassesLower   = "lower"
	PassesBoth    = "both"
)

// Config selects the pass set and the strictness of the call
// rewriter.
type Config struct {
	Name   string `yaml:"name"`
	Passes string `yaml:"passes"`
	Strict bool   `yaml:"strict"`
}

// DefaultConfig runs both passes tolerantly.
func DefaultConfig() Config {
	return Config{Name: "cfix", Passes: PassesBoth}
}

// Validate checks the pass selector.
func (c Config) Validate() error {
	switch c.Passes {
	case PassesRewrite, PassesLower, PassesBoth, "":
		return nil
	default:
		return fmt.Errorf("unknown pass set %q (want %s, %s or %s)",
			c.Passes, PassesRewrite, PassesLower, PassesBoth)
	}
}

func (c Config) runRewrite() bool {
	return c.Passes == PassesRewrite || c.Passes == PassesBoth || c.Passes == ""
}

func (c Config) runLower() bool {
	return c.Passes == PassesLower || c.Passes == PassesBoth || c.Passes == ""
}

// LoadConfig reads a YAML configuration file. A missing path yields
// the default configuration.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	config := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// WriteDefaultConfig creates or overwrites a configuration file with
// the defaults.
func WriteDefaultConfig(path string) error {
	d, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
