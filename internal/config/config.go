// Package config loads the app configuration: an optional YAML file, an
// optional .env file and environment variable overrides, in that order of
// increasing precedence. Everything has a working default; a fresh install
// needs no configuration at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names. Each overrides its file-config counterpart.
const (
	EnvDataDir = "HAULORY_DATA_DIR"
	EnvLogFile = "HAULORY_LOG_FILE"
	EnvVerbose = "HAULORY_VERBOSE"
)

// Config is the resolved app configuration.
type Config struct {
	// DataDir holds the encrypted collection files.
	DataDir string `yaml:"dataDir"`

	// LogFile is the rotating log destination. Relative paths resolve
	// against DataDir.
	LogFile string `yaml:"logFile"`

	// Verbose mirrors the --verbose flag default.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration: a per-user data directory
// and a log file inside it.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		LogFile: "haulory.log",
	}
}

// Load resolves the configuration. path names an explicit YAML file; when
// empty, <dataDir>/config.yaml is tried and silently skipped if absent. A
// .env file in the working directory is applied before reading overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	// Missing .env is the normal case.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// fine, defaults apply
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if !filepath.IsAbs(cfg.LogFile) {
		cfg.LogFile = filepath.Join(cfg.DataDir, cfg.LogFile)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}

// defaultDataDir is the per-user application data directory, falling back
// to a dotted directory under $HOME and finally the working directory.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "haulory")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".haulory")
	}
	return "haulory-data"
}
