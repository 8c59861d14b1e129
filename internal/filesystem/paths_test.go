// filepath: internal/filesystem/paths_test.go
package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin(t *testing.T) {
	root := filepath.FromSlash("/srv/storage")

	testCases := []struct {
		name     string
		elems    []string
		expected string
		wantErr  bool
	}{
		{"Nested path", []string{"images", "a.png"}, filepath.FromSlash("/srv/storage/images/a.png"), false},
		{"Root itself", []string{""}, root, false},
		{"Dot segments inside root", []string{"a/../b.txt"}, filepath.FromSlash("/srv/storage/b.txt"), false},
		{"Parent escape", []string{".."}, "", true},
		{"Deep escape", []string{"images/../../etc/passwd"}, "", true},
		{"Name starting with dots", []string{"..hidden"}, filepath.FromSlash("/srv/storage/..hidden"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Within(root, tc.elems...)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrOutsideRoot)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestContains(t *testing.T) {
	dir := filepath.FromSlash("/srv/storage/.tmp")

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{"Directory itself", "/srv/storage/.tmp", true},
		{"File inside", "/srv/storage/.tmp/upload-1", true},
		{"Nested inside", "/srv/storage/.tmp/a/b", true},
		{"Unclean path inside", "/srv/storage/x/../.tmp/upload-1", true},
		{"Sibling", "/srv/storage/images", false},
		{"Parent", "/srv/storage", false},
		{"Shared prefix", "/srv/storage/.tmpfiles", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Contains(dir, filepath.FromSlash(tc.path)))
		})
	}
}
