// Package config provides the configuration schema, loader, and pronouncer
// registry for the phonomatch tool.
package config

import (
	"errors"
	"fmt"
)

// LogLevel controls log verbosity for the phonomatch tool.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// MatcherKind selects the distance function queries are ranked by.
type MatcherKind string

const (
	// MatcherString ranks by normalized lexical edit distance only.
	MatcherString MatcherKind = "string"

	// MatcherPhonetic ranks by normalized phonetic edit distance only.
	MatcherPhonetic MatcherKind = "phonetic"

	// MatcherHybrid blends phonetic and lexical distance.
	MatcherHybrid MatcherKind = "hybrid"
)

// IsValid reports whether k is a recognised matcher kind.
func (k MatcherKind) IsValid() bool {
	switch k {
	case MatcherString, MatcherPhonetic, MatcherHybrid:
		return true
	}
	return false
}

// PronouncerKind selects how target and query phrases are pronounced.
type PronouncerKind string

const (
	// PronouncerDict looks words up in a CMU-style TSV lexicon file.
	PronouncerDict PronouncerKind = "dict"

	// PronouncerGoruut runs the goruut grapheme-to-phoneme engine.
	PronouncerGoruut PronouncerKind = "goruut"

	// PronouncerPgDict looks words up in a PostgreSQL lexicon.
	PronouncerPgDict PronouncerKind = "pgdict"
)

// IsValid reports whether k is a recognised pronouncer kind.
func (k PronouncerKind) IsValid() bool {
	switch k {
	case PronouncerDict, PronouncerGoruut, PronouncerPgDict:
		return true
	}
	return false
}

// Config is the root configuration structure for phonomatch.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address serving the Prometheus /metrics
	// endpoint. Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	// TargetsFile is the path to the YAML list of target phrases the
	// matcher is built over.
	TargetsFile string `yaml:"targets_file"`

	Matcher    MatcherConfig    `yaml:"matcher"`
	Pronouncer PronouncerConfig `yaml:"pronouncer"`
}

// MatcherConfig tunes the matcher built over the target list.
type MatcherConfig struct {
	// Kind selects the distance function. Default: hybrid.
	Kind MatcherKind `yaml:"kind"`

	// PhoneticWeight in [0, 1] trades phonetic against lexical distance
	// for the hybrid kind. Default: 0.7.
	PhoneticWeight float64 `yaml:"phonetic_weight"`

	// FindThreshold is the maximum normalized distance for a query to
	// match. Default: 0.35.
	FindThreshold float64 `yaml:"find_threshold"`

	// MaxReturns caps the number of matches reported per query. Default: 4.
	MaxReturns int `yaml:"max_returns"`

	// Accelerated selects the vantage point tree over the linear scan.
	Accelerated bool `yaml:"accelerated"`
}

// PronouncerConfig selects and configures the pronouncer implementation.
type PronouncerConfig struct {
	// Kind selects the registered pronouncer implementation.
	Kind PronouncerKind `yaml:"kind"`

	// DictPath is the lexicon file path used when Kind is "dict".
	DictPath string `yaml:"dict_path"`

	// Language is the goruut language name used when Kind is "goruut".
	// Default: English.
	Language string `yaml:"language"`

	// PostgresDSN is the connection string used when Kind is "pgdict".
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Defaults returns the configuration used when fields are left unset.
func Defaults() Config {
	return Config{
		LogLevel: LogInfo,
		Matcher: MatcherConfig{
			Kind:           MatcherHybrid,
			PhoneticWeight: 0.7,
			FindThreshold:  0.35,
			MaxReturns:     4,
			Accelerated:    true,
		},
		Pronouncer: PronouncerConfig{
			Kind:     PronouncerGoruut,
			Language: "English",
		},
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.TargetsFile == "" {
		errs = append(errs, errors.New("targets_file is required"))
	}

	if cfg.Matcher.Kind != "" && !cfg.Matcher.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("matcher.kind %q is invalid; valid values: string, phonetic, hybrid", cfg.Matcher.Kind))
	}
	if cfg.Matcher.PhoneticWeight < 0 || cfg.Matcher.PhoneticWeight > 1 {
		errs = append(errs, fmt.Errorf("matcher.phonetic_weight %.2f is out of range [0, 1]", cfg.Matcher.PhoneticWeight))
	}
	if cfg.Matcher.FindThreshold < 0 {
		errs = append(errs, fmt.Errorf("matcher.find_threshold %.2f must not be negative", cfg.Matcher.FindThreshold))
	}
	if cfg.Matcher.MaxReturns <= 0 {
		errs = append(errs, fmt.Errorf("matcher.max_returns %d must be positive", cfg.Matcher.MaxReturns))
	}

	if cfg.Pronouncer.Kind != "" && !cfg.Pronouncer.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("pronouncer.kind %q is invalid; valid values: dict, goruut, pgdict", cfg.Pronouncer.Kind))
	}
	if cfg.Pronouncer.Kind == PronouncerDict && cfg.Pronouncer.DictPath == "" {
		errs = append(errs, errors.New("pronouncer.dict_path is required when pronouncer.kind is dict"))
	}
	if cfg.Pronouncer.Kind == PronouncerPgDict && cfg.Pronouncer.PostgresDSN == "" {
		errs = append(errs, errors.New("pronouncer.postgres_dsn is required when pronouncer.kind is pgdict"))
	}

	// The string matcher never pronounces, so any pronouncer config is
	// acceptable there.

	return errors.Join(errs...)
}
