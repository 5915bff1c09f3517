package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	for in, want := range map[string]Output{
		"":      OutputAuto,
		"auto":  OutputAuto,
		"plain": OutputPlain,
		"tui":   OutputTUI,
	} {
		got, err := ParseOutput(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOutput("fancy")
	assert.Error(t, err)
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	_, ok := NewUI(cmd, OutputTUI).(*TUI)
	assert.True(t, ok, "tui output should build a TUI")

	_, ok = NewUI(cmd, OutputPlain).(*SimpleUI)
	assert.True(t, ok, "plain output should build a SimpleUI")

	_, ok = NewUI(cmd, OutputAuto).(*SimpleUI)
	assert.True(t, ok, "auto output on a buffer should build a SimpleUI")
}

func TestIsTTY_WithRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "casegen-tty")
	require.NoError(t, err)
	defer file.Close()

	assert.False(t, IsTTY(file))
}

func TestIsTTY_WithClosedFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "casegen-tty")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.False(t, IsTTY(file))
}

func TestIsTTY_WithCharDevice(t *testing.T) {
	file, err := os.Open("/dev/null")
	if err != nil {
		t.Skip("/dev/null not available")
	}
	defer file.Close()

	assert.True(t, IsTTY(file))
}

func TestIsTTY_WithNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, IsTTY(&buf))
}
