package jwalk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRenderFailed = errors.New("render failed")

func TestSlurpReadsWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	want := `{"a":1,"b":[1,2,3]}`
	require.NoError(t, os.WriteFile(path, []byte(want), 0o644))

	data, err := Slurp(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestSlurpMissingFile(t *testing.T) {
	_, err := Slurp(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRewriteFileReplacesContentsAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`old`), 0o644))

	err := rewriteFile(path, func(out Sink) error {
		_, werr := out.Write([]byte(`new`))
		return werr
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// no stray temp files left behind in the directory
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestRewriteFileLeavesOriginalOnRenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`untouched`), 0o644))

	err := rewriteFile(path, func(out Sink) error {
		return errRenderFailed
	})
	assert.ErrorIs(t, err, errRenderFailed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestSetfFileAppliesAndPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1,"b":2}`), 0o644))

	changed, err := SetfFile(path, ".a", fmtPtr("%d"), 99)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":99,"b":2}`, string(data))
}

func TestSetfFileDeleteNoopLeavesFileUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	original := `{"a":1}`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	changed, err := SetfFile(path, ".missing", nil)
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
