// Package controller renders workflow progress and results, either as plain
// text or as an interactive terminal UI.
package controller

import (
	m "github.com/mouse-blink/casegen/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeGenerate StartMode = iota
	ModeList
	ModeVerify
	ModeWatch
)

func (s StartMode) String() string {
	switch s {
	case ModeGenerate:
		return "generate"
	case ModeList:
		return "list"
	case ModeVerify:
		return "verify"
	case ModeWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithGenerateMode sets the UI to dataset generation mode.
func WithGenerateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeGenerate
	}
}

// WithListMode sets the UI to dry-run listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithVerifyMode sets the UI to syntax verification mode.
func WithVerifyMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeVerify
	}
}

// WithWatchMode sets the UI to watch mode.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

// WithTotal announces how many source files will be processed.
func WithTotal(n int) StartOption {
	return func(c *StartConfig) {
		c.total = n
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

//go:generate mockery --name=UI --output=./mocks --outpkg=mocks --structname=MockUI --filename=mock_ui.go

// UI defines how the workflow reports progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayClassReport(report m.ClassReport)
	DisplaySummary(summary m.Summary, err error) error
	DisplayFindings(findings []m.SyntaxFinding, err error) error
	DisplayWatchEvent(changed []m.Path)
}
