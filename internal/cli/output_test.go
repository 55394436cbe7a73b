package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/ui"
	"github.com/agbru/polyroots/pkg/models"
)

var quartic = poly.FromInt64s(-1, 0, 0, 0, 1)

func TestWriteResultToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roots.txt")
	require.NoError(t, WriteResultToFile(quartic, unitResult(), OutputConfig{OutputFile: path, Digits: 4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Certified roots of x^4 - 1")
	assert.Contains(t, text, "# Degree: 4 (deflation 4)")
	assert.True(t, strings.HasSuffix(text, "-1\n1\n0 - 1*I\n0 + 1*I\n"), text)
}

func TestWriteResultToFile_NoPath(t *testing.T) {
	assert.NoError(t, WriteResultToFile(quartic, unitResult(), OutputConfig{}))
}

func TestWriteResultToFile_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	err := WriteResultToFile(quartic, unitResult(), OutputConfig{OutputFile: filepath.Join(blocker, "roots.txt")})
	assert.Error(t, err)
}

func TestDisplayResultWithConfig(t *testing.T) {
	withTheme(t, ui.NoColorTheme)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, quartic, unitResult(), OutputConfig{JSON: true, Digits: 3}))
		var report models.RootReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
		assert.Equal(t, "x^4 - 1", report.Polynomial)
		assert.Equal(t, 2, report.RealRoots)
		assert.Len(t, report.Roots, 4)
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, quartic, unitResult(), OutputConfig{Quiet: true}))
		assert.Equal(t, "-1\n1\n0 - 1*I\n0 + 1*I\n", buf.String())
	})

	t.Run("text without digits prints only the summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, quartic, unitResult(), OutputConfig{}))
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
		assert.Contains(t, buf.String(), "4 roots (2 real)")
	})

	t.Run("file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, DisplayResultWithConfig(&buf, quartic, unitResult(), OutputConfig{OutputFile: path, Digits: 2}))
		assert.Contains(t, buf.String(), "Roots saved to: "+path)
		assert.FileExists(t, path)
	})
}
