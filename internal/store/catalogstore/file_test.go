package catalogstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"linkscout/internal/catalog"
)

func TestFileStore_FetchAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[
		{"name": "VLC", "download_pattern": "https://www.videolan.org/vlc/", "os_compatibility": {"windows": "", "macos": "", "linux": ""}},
		{"name": "Firefox", "download_pattern": "https://www.mozilla.org/firefox/download/", "os_compatibility": {"windows": "https://www.mozilla.org/firefox/windows/"}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	items, err := NewFile(path).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	url, ok := items[0].URLFor(catalog.PlatformWindows)
	require.True(t, ok)
	require.Equal(t, "https://www.videolan.org/vlc/", url)

	// Per-platform override wins over the generic pattern.
	url, ok = items[1].URLFor(catalog.PlatformWindows)
	require.True(t, ok)
	require.Equal(t, "https://www.mozilla.org/firefox/windows/", url)

	_, ok = items[1].URLFor(catalog.PlatformLinux)
	require.False(t, ok)
}

func TestFileStore_MissingFile(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json")).FetchAll(context.Background())
	require.Error(t, err)
}
