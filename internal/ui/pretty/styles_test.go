package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/config"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, rendered := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.Command.Render("test"),
		styles.TableErrorRow.Render("test"),
	} {
		assert.Equal(t, "test", rendered)
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may not emit ANSI codes outside a terminal, so only the text is checked.
	assert.Contains(t, styles.Error.Render("x"), "x")
	assert.Contains(t, styles.Kind.Render("x"), "x")
	assert.Contains(t, styles.Range.Render("x"), "x")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name    string
		mode    config.ColorMode
		noColor string
		writer  *bytes.Buffer
		want    bool
	}{
		{name: "always", mode: config.ColorAlways, writer: &buf, want: true},
		{name: "never", mode: config.ColorNever, writer: &buf},
		{name: "auto non-tty", mode: config.ColorAuto, writer: &buf},
		{name: "empty mode", mode: "", writer: &buf},
		{name: "unknown mode", mode: "sometimes", writer: &buf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, os.Stdout))
}
