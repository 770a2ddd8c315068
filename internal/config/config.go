package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration for proof, stored in ~/.proof/config.toml.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string `toml:"host"`
	// Port is the TCP port of the API.
	Port string `toml:"port"`
	// StaticDir holds index.html, manifest.webmanifest, sw.js and assets.
	// The UI routes are only registered when the directory exists.
	StaticDir string `toml:"static_dir"`
}

// StorageConfig locates the tracker document.
type StorageConfig struct {
	// DataDir is the directory holding the data file. "~/" is expanded.
	DataDir string `toml:"data_dir"`
	// DataFile is the document file name, or an absolute path.
	DataFile string `toml:"data_file"`
}

// LogConfig controls the console logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is one of text, json, logfmt.
	Format string `toml:"format"`
}

const (
	// DefaultHost binds all interfaces.
	DefaultHost = "0.0.0.0"
	// DefaultPort is the API port.
	DefaultPort = "5000"
	// DefaultStaticDir is resolved relative to the working directory.
	DefaultStaticDir = "static"
	// DefaultDataDir is the per-user data directory.
	DefaultDataDir = "~/.proof"
	// DefaultDataFile is the document file name.
	DefaultDataFile = "tracker_data.json"
	// DefaultLogLevel is the console log level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the console log format.
	DefaultLogFormat = "text"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:      DefaultHost,
			Port:      DefaultPort,
			StaticDir: DefaultStaticDir,
		},
		Storage: StorageConfig{
			DataDir:  DefaultDataDir,
			DataFile: DefaultDataFile,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# proof configuration - ~/.proof/config.toml
#
# All settings are optional. Environment variables override this file and
# command-line flags override both.

[server]
# Interface and port of the JSON API (env: PORT).
host = "0.0.0.0"
port = "5000"
# Directory with index.html, manifest.webmanifest and sw.js (env: PROOF_STATIC_DIR).
static_dir = "static"

[storage]
# Directory of the tracker document (env: DATA_DIR).
data_dir = "~/.proof"
# File name, or absolute path, of the tracker document (env: PROOF_DATA_FILE).
data_file = "tracker_data.json"

[log]
# debug, info, warn or error (env: PROOF_LOG_LEVEL).
level = "info"
# text, json or logfmt (env: PROOF_LOG_FORMAT).
format = "text"
`

// DefaultPath returns the path to ~/.proof/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".proof", "config.toml"), nil
}

// Load reads the config file at path, or ~/.proof/config.toml when path is
// empty, then applies environment overrides. The default file is created
// with annotated defaults on first run; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			// No home directory: run from env and built-in defaults only.
			fmt.Fprintf(os.Stderr, "Warning: skipping config file: %v\n", err)
			ApplyEnv(&cfg)
			fillDefaults(&cfg)
			return cfg, nil
		}
		path = p
	}

	_, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case errors.Is(err, os.ErrNotExist):
		return Default(), fmt.Errorf("config file %s does not exist", path)
	default:
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	ApplyEnv(&cfg)
	fillDefaults(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables. DATA_DIR and PORT keep
// the names used by hosted deployments.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("PROOF_DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("PROOF_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PROOF_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("PROOF_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PROOF_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// fillDefaults restores zero-value fields so a partially filled file still
// yields a usable Config.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = def.Storage.DataDir
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = def.Storage.DataFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// DataPath returns the resolved path of the tracker document.
func (c Config) DataPath() (string, error) {
	file := expandHome(c.Storage.DataFile)
	if filepath.IsAbs(file) {
		return file, nil
	}
	dir := expandHome(c.Storage.DataDir)
	if strings.HasPrefix(dir, "~") {
		return "", fmt.Errorf("cannot expand data dir %q", c.Storage.DataDir)
	}
	return filepath.Join(dir, file), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
