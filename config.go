package chaosrun

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Config describes how to run the engine over the deck pair.
type Config struct {
	Cmd      []string `json:"cmd,omitempty"       yaml:"cmd"`
	WorkDir  string   `json:"work_dir,omitempty"  yaml:"work_dir"`
	UseTTY   bool     `json:"use_tty,omitempty"   yaml:"use_tty"`
	LogLevel string   `json:"log_level,omitempty" yaml:"log_level"`
}

// DefaultConfig returns the plain `lmp` setup in the current directory.
func DefaultConfig() Config {
	return Config{
		Cmd:      []string{DefaultExecutable},
		WorkDir:  ".",
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML run plan, validates it and applies it over the
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes a YAML run plan.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := validateConfig(doc); err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func validateConfig(doc map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, err := range result.Errors() {
		errs = append(errs, err.String())
	}

	return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(errs, "; "))
}

var configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "cmd": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "work_dir": {"type": "string", "minLength": 1},
    "use_tty": {"type": "boolean"},
    "log_level": {
      "type": "string",
      "enum": ["trace", "debug", "info", "warn", "error", "disabled"]
    }
  }
}`
