// filepath: internal/upload/naming_test.go
package upload

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileNameParts(t *testing.T) {
	tests := []struct {
		name string
		base string
		ext  string
	}{
		{"photo.jpg", "photo", "jpg"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"README", "README", ""},
		{".htaccess", "", "htaccess"},
		{"dir/sub/file.txt", "file", "txt"},
		{`C:\fakepath\scan.PNG`, "scan", "PNG"},
		{"", "", ""},
	}

	for _, tc := range tests {
		f := File{Name: tc.name}
		assert.Equal(t, tc.base, f.BaseName(), "Base mismatch for %q", tc.name)
		assert.Equal(t, tc.ext, f.Extension(), "Extension mismatch for %q", tc.name)
	}
}

func TestRandomHash(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		name := RandomHash(16)("photo", "jpg")
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}\.jpg$`), name)
	})

	t.Run("full length", func(t *testing.T) {
		name := RandomHash(0)("photo", "png")
		assert.Len(t, strings.TrimSuffix(name, ".png"), 128)
	})

	t.Run("no extension", func(t *testing.T) {
		name := RandomHash(8)("README", "")
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), name)
	})

	t.Run("unique", func(t *testing.T) {
		fn := RandomHash(32)
		assert.NotEqual(t, fn("a", "txt"), fn("a", "txt"))
	})
}

func TestULID(t *testing.T) {
	fn := ULID()
	first := fn("photo", "jpg")
	second := fn("photo", "jpg")

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}\.jpg$`), first)
	assert.NotEqual(t, first, second)
	assert.Len(t, fn("README", ""), 26)
}

func TestSuffix(t *testing.T) {
	fn := Suffix("_v2")
	assert.Equal(t, "photo_v2.jpg", fn("photo", "jpg"))
	assert.Equal(t, "README_v2", fn("README", ""))
}

func TestKeepOriginal(t *testing.T) {
	fn := KeepOriginal()
	assert.Equal(t, "archive.tar.gz", fn("archive.tar", "gz"))
	assert.Equal(t, "Makefile", fn("Makefile", ""))
}
