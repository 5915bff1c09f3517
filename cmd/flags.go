package cmd

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags only override the configuration when set explicitly, so that the
// config file and environment keep working underneath them.

func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if !flags.Changed(name) {
		return
	}

	if v, err := flags.GetString(name); err == nil {
		*dst = v
	}
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if !flags.Changed(name) {
		return
	}

	if v, err := flags.GetInt(name); err == nil {
		*dst = v
	}
}

func overrideBool(flags *pflag.FlagSet, name string, dst *bool) {
	if !flags.Changed(name) {
		return
	}

	if v, err := flags.GetBool(name); err == nil {
		*dst = v
	}
}

func overrideDuration(flags *pflag.FlagSet, name string, dst *time.Duration) {
	if !flags.Changed(name) {
		return
	}

	if v, err := flags.GetDuration(name); err == nil {
		*dst = v
	}
}
