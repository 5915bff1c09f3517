// Package config holds casegen settings and loads them from defaults, an
// optional YAML file and CASEGEN_* environment variables.
package config

import (
	"runtime"
	"time"

	"github.com/mouse-blink/casegen/internal/domain/extract"
)

// Config represents the complete casegen configuration.
type Config struct {
	Tests     string        `yaml:"tests" mapstructure:"tests"`         // directory holding the test classes
	Output    string        `yaml:"output" mapstructure:"output"`       // dataset root
	Extension string        `yaml:"extension" mapstructure:"extension"` // source file extension, with the dot
	Lookback  int           `yaml:"lookback" mapstructure:"lookback"`   // companion annotation window in characters
	UI        string        `yaml:"ui" mapstructure:"ui"`               // auto, plain or tui
	Markers   MarkersConfig `yaml:"markers" mapstructure:"markers"`
	Verify    VerifyConfig  `yaml:"verify" mapstructure:"verify"`
	Watch     WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Log       LogConfig     `yaml:"log" mapstructure:"log"`
}

// MarkersConfig is the token vocabulary used to recognise test cases.
type MarkersConfig struct {
	TestAnnotation      string   `yaml:"test_annotation" mapstructure:"test_annotation"`
	MethodModifiers     []string `yaml:"method_modifiers" mapstructure:"method_modifiers"`
	CompanionAnnotation string   `yaml:"companion_annotation" mapstructure:"companion_annotation"`
	SnippetA            string   `yaml:"snippet_a" mapstructure:"snippet_a"`
	SnippetB            string   `yaml:"snippet_b" mapstructure:"snippet_b"`
	NullLiteral         string   `yaml:"null_literal" mapstructure:"null_literal"`
	TypeKeywords        []string `yaml:"type_keywords" mapstructure:"type_keywords"`
	TypeModifiers       []string `yaml:"type_modifiers" mapstructure:"type_modifiers"`
}

// VerifyConfig configures syntax verification of generated files.
type VerifyConfig struct {
	Workers int  `yaml:"workers" mapstructure:"workers"`
	Strict  bool `yaml:"strict" mapstructure:"strict"` // fail when findings exist
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	mk := extract.DefaultMarkers()

	return &Config{
		Tests:     "core/src/test/java/io/github/alien/roseau/diff",
		Output:    "roseau-dataset",
		Extension: ".java",
		Lookback:  extract.DefaultLookback,
		UI:        "auto",
		Markers: MarkersConfig{
			TestAnnotation:      mk.TestAnnotation,
			MethodModifiers:     mk.MethodModifiers,
			CompanionAnnotation: mk.CompanionAnnotation,
			SnippetA:            mk.SnippetA,
			SnippetB:            mk.SnippetB,
			NullLiteral:         mk.NullLiteral,
			TypeKeywords:        mk.TypeKeywords,
			TypeModifiers:       mk.TypeModifiers,
		},
		Verify: VerifyConfig{
			Workers: runtime.NumCPU(),
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ExtractMarkers converts the configured vocabulary for the extractor.
func (c MarkersConfig) ExtractMarkers() extract.Markers {
	return extract.Markers{
		TestAnnotation:      c.TestAnnotation,
		MethodModifiers:     c.MethodModifiers,
		CompanionAnnotation: c.CompanionAnnotation,
		SnippetA:            c.SnippetA,
		SnippetB:            c.SnippetB,
		NullLiteral:         c.NullLiteral,
		TypeKeywords:        c.TypeKeywords,
		TypeModifiers:       c.TypeModifiers,
	}
}
