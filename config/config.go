package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/s3dev/gitvck/domain"
)

// Config is the top-level configuration for gitvck's batch mode.
type Config struct {
	Forge    ForgeConfig    `yaml:"forge"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Checks   []CheckConfig  `yaml:"checks"`
}

// ForgeConfig holds credentials for forge API sources.
type ForgeConfig struct {
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// DefaultsConfig holds settings applied to every check.
type DefaultsConfig struct {
	Timeout Duration `yaml:"timeout"` // Per-check deadline, e.g. "5s"
}

// CheckConfig describes a single version check.
type CheckConfig struct {
	Name    string `yaml:"name"`    // Name used in the notice
	Source  string `yaml:"source"`  // "pypi", "goproxy", "github", "gitlab", "git"
	Path    string `yaml:"path"`    // Package name, owner/repo, or repo path/URL
	Version string `yaml:"version"` // The current version to compare against
	Token   string `yaml:"token"`   // Per-check forge credential override
}

// Duration is a time.Duration that unmarshals from strings like "5s".
type Duration time.Duration

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment
// variables and resolving token file paths. Files ending in .hcl use the
// HCL schema; everything else is YAML.
func Load(path string) (*Config, error) {
	var cfg *Config
	var err error
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		cfg, err = loadHCL(path)
	} else {
		cfg, err = loadYAML(path)
	}
	if err != nil {
		return nil, err
	}

	// Resolve tokens (env vars and file paths)
	cfg.Forge.Token = resolveToken(cfg.Forge.Token)
	for i := range cfg.Checks {
		cfg.Checks[i].Token = resolveToken(cfg.Checks[i].Token)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitvck.yaml",
		".gitvck.yml",
		"gitvck.yaml",
		"gitvck.yml",
		".gitvck.hcl",
		"gitvck.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values. Every problem is
// reported, not just the first.
func validate(cfg *Config) error {
	var problems []error

	if len(cfg.Checks) == 0 {
		problems = append(problems, errors.New("at least one check must be configured"))
	}

	for i, chk := range cfg.Checks {
		if chk.Name == "" {
			problems = append(problems, fmt.Errorf("checks[%d].name is required", i))
		}
		if chk.Version == "" {
			problems = append(problems, fmt.Errorf(
				"checks[%d].version is required (the host's current version)", i,
			))
		}
		if chk.Source == "" {
			problems = append(problems, fmt.Errorf("checks[%d].source is required", i))
			continue
		}
		if _, err := domain.ParseSourceKind(chk.Source); err != nil {
			problems = append(problems, fmt.Errorf("checks[%d]: %w", i, err))
		}
	}

	return errors.Join(problems...)
}
