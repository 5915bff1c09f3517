package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPath indicates a missing tests or output directory.
	ErrEmptyPath = errors.New("empty path")

	// ErrInvalidExtension indicates an extension without a leading dot.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrInvalidLookback indicates a non-positive companion window.
	ErrInvalidLookback = errors.New("invalid lookback")

	// ErrInvalidWorkers indicates a non-positive verification pool size.
	ErrInvalidWorkers = errors.New("invalid verify workers")

	// ErrInvalidDebounce indicates a non-positive watch debounce.
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidLog indicates an unsupported log level or format.
	ErrInvalidLog = errors.New("invalid log settings")

	// ErrInvalidUI indicates an unsupported ui name.
	ErrInvalidUI = errors.New("invalid ui")

	// ErrInvalidMarkers indicates an unusable marker vocabulary.
	ErrInvalidMarkers = errors.New("invalid markers")
)

// Validate checks that the configuration is valid and complete. Every
// problem found is reported.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Tests) == "" {
		errs = append(errs, fmt.Errorf("%w: tests", ErrEmptyPath))
	}

	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, fmt.Errorf("%w: output", ErrEmptyPath))
	}

	if len(cfg.Extension) < 2 || !strings.HasPrefix(cfg.Extension, ".") {
		errs = append(errs, fmt.Errorf("%w: %q must start with a dot", ErrInvalidExtension, cfg.Extension))
	}

	if cfg.Lookback <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidLookback, cfg.Lookback))
	}

	if cfg.Verify.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Verify.Workers))
	}

	if cfg.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}

	switch cfg.UI {
	case "auto", "plain", "tui":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidUI, cfg.UI))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: level %q", ErrInvalidLog, cfg.Log.Level))
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: format %q", ErrInvalidLog, cfg.Log.Format))
	}

	if err := cfg.Markers.ExtractMarkers().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidMarkers, err))
	}

	return errors.Join(errs...)
}
