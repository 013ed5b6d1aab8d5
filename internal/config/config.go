package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jiashen-meow/feelingdiary/internal/storage"
)

// Config is the root configuration for diary, stored in ~/.feelingdiary/config.yaml.
type Config struct {
	// DataDir holds entries.json.
	DataDir string `mapstructure:"data_dir"`
	// SeedSamples fills an empty journal with the sample entries on first run.
	SeedSamples bool `mapstructure:"seed_samples"`
	// MetricsFile receives the store counters in Prometheus text format after
	// each command. Empty disables it.
	MetricsFile string    `mapstructure:"metrics_file"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
	File   string `mapstructure:"file"`   // empty = stderr
}

// EntriesPath returns the location of the entries document.
func (c Config) EntriesPath() string {
	return storage.DefaultPath(c.DataDir)
}

// EnvPrefix is prepended to every environment override, e.g. DIARY_DATA_DIR.
const EnvPrefix = "DIARY"

// configTemplate is the annotated config written on first run.
const configTemplate = `# diary configuration: ~/.feelingdiary/config.yaml
#
# All settings are optional. Environment variables override this file
# (DIARY_DATA_DIR, DIARY_SEED_SAMPLES, DIARY_LOG_LEVEL, ...) and command-line
# flags override both.

# Directory holding entries.json. Empty means ~/.feelingdiary.
data_dir: ""

# Fill an empty journal with a handful of sample entries on first run.
seed_samples: true

# Write store load/save counters here after every command, in Prometheus
# textfile format (e.g. for node_exporter). Empty disables it.
metrics_file: ""

log:
  # debug, info, warn or error.
  level: warn
  # console or json.
  format: console
  # Log file path. Empty logs to stderr.
  file: ""
`

// DefaultFilePath returns ~/.feelingdiary/config.yaml.
func DefaultFilePath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Options selects where configuration is read from.
type Options struct {
	// File is an explicit config file. When empty the default path is used
	// and created from the annotated template if missing.
	File string
	// Flags are bound over file and environment values. Flag names use
	// dashes for underscores, e.g. --data-dir for data_dir.
	Flags *pflag.FlagSet
}

// Load reads configuration with priority: flags > env > file > defaults.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, flag := range map[string]string{
			"data_dir":  "data-dir",
			"log.level": "log-level",
		} {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag --%s: %w", flag, err)
				}
			}
		}
	}

	path := opts.File
	if path == "" {
		def, err := DefaultFilePath()
		if err != nil {
			return Config{}, err
		}
		path = def
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// First run: write the annotated template so users can discover options.
			if writeErr := writeDefault(path); writeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
			}
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || opts.File != "" {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		base, err := storage.BaseDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = base
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.MetricsFile = expandPath(cfg.MetricsFile)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("seed_samples", true)
	v.SetDefault("metrics_file", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
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

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
