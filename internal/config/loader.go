package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory, without
// extension.
const FileName = ".casegen"

// EnvPrefix prefixes every environment override, e.g. CASEGEN_VERIFY_WORKERS.
const EnvPrefix = "CASEGEN"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader creates a loader searching rootDir for .casegen.yaml. A non-empty
// file is read instead and must exist.
func NewLoader(rootDir, file string) Loader {
	return &loader{rootDir: rootDir, file: file}
}

var keys = []string{
	"tests",
	"output",
	"extension",
	"lookback",
	"ui",
	"markers.test_annotation",
	"markers.method_modifiers",
	"markers.companion_annotation",
	"markers.snippet_a",
	"markers.snippet_b",
	"markers.null_literal",
	"markers.type_keywords",
	"markers.type_modifiers",
	"verify.workers",
	"verify.strict",
	"watch.debounce",
	"log.level",
	"log.format",
}

// Load resolves the configuration with the following priority (highest to
// lowest): CASEGEN_* environment variables, the config file, defaults.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("tests", d.Tests)
	v.SetDefault("output", d.Output)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("lookback", d.Lookback)
	v.SetDefault("ui", d.UI)

	v.SetDefault("markers.test_annotation", d.Markers.TestAnnotation)
	v.SetDefault("markers.method_modifiers", d.Markers.MethodModifiers)
	v.SetDefault("markers.companion_annotation", d.Markers.CompanionAnnotation)
	v.SetDefault("markers.snippet_a", d.Markers.SnippetA)
	v.SetDefault("markers.snippet_b", d.Markers.SnippetB)
	v.SetDefault("markers.null_literal", d.Markers.NullLiteral)
	v.SetDefault("markers.type_keywords", d.Markers.TypeKeywords)
	v.SetDefault("markers.type_modifiers", d.Markers.TypeModifiers)

	v.SetDefault("verify.workers", d.Verify.Workers)
	v.SetDefault("verify.strict", d.Verify.Strict)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadConfig loads configuration rooted at the current working directory.
func LoadConfig(file string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return NewLoader(wd, file).Load()
}
