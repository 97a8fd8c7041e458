// Package project loads irmodel.toml, the optional configuration file
// shared by every irmodel command.
package project

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"irmodel/internal/irbuild"
	"irmodel/internal/trace"
)

// Config is the decoded irmodel.toml. Zero values mean "use the default".
type Config struct {
	Build  BuildConfig  `toml:"build"`
	Trace  TraceConfig  `toml:"trace"`
	Replay ReplayConfig `toml:"replay"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// BuildConfig is the [build] section.
type BuildConfig struct {
	SymbolCapacity int64 `toml:"symbol_capacity"`
	MetadataStart  int   `toml:"metadata_start"`
}

// TraceConfig is the [trace] section.
type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// ReplayConfig is the [replay] section.
type ReplayConfig struct {
	Jobs int `toml:"jobs"`
}

// ErrInvalidConfig wraps every validation failure of a config file.
var ErrInvalidConfig = errors.New("invalid irmodel.toml")

// Load parses and validates the config at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: unknown keys %v", path, ErrInvalidConfig, undecoded)
	}
	if meta.IsDefined("build", "symbol_capacity") && cfg.Build.SymbolCapacity <= 0 {
		return Config{}, fmt.Errorf("%s: %w: [build].symbol_capacity must be positive", path, ErrInvalidConfig)
	}
	if cfg.Build.MetadataStart < 0 {
		return Config{}, fmt.Errorf("%s: %w: [build].metadata_start must not be negative", path, ErrInvalidConfig)
	}
	if cfg.Replay.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: %w: [replay].jobs must not be negative", path, ErrInvalidConfig)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return Config{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidConfig, err)
		}
	}
	if meta.IsDefined("trace", "mode") {
		if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
			return Config{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidConfig, err)
		}
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds irmodel.toml above startDir and loads it. A missing file
// yields the zero Config.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return Config{}, err
	}
	return Load(path)
}

// BuildOptions converts the [build] section into builder options.
func (c Config) BuildOptions() (irbuild.Options, error) {
	capacity, err := safecast.Conv[uint32](c.Build.SymbolCapacity)
	if err != nil {
		return irbuild.Options{}, fmt.Errorf("[build].symbol_capacity: %w", err)
	}
	return irbuild.Options{SymbolCapacity: capacity, MetadataStart: c.Build.MetadataStart}, nil
}
