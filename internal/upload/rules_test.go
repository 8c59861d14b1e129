// filepath: internal/upload/rules_test.go
package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates an in-memory PNG of the given size.
func createTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	blue := color.RGBA{0, 0, 255, 255}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, blue)
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestOutcome(t *testing.T) {
	ok := Accept()
	assert.True(t, ok.Accepted())
	assert.Empty(t, ok.Reason())

	no := Reject("too %s", "big")
	assert.False(t, no.Accepted())
	assert.Equal(t, "too big", no.Reason())
}

func TestSizeRules(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		rule     Rule
		size     int64
		accepted bool
		reason   string
	}{
		{"under max", MaxSize(1024), 1000, true, ""},
		{"at max", MaxSize(1024), 1024, true, ""},
		{"over max", MaxSize(1024), 2048, false, "too large (2.0 KiB), the limit is 1.0 KiB"},
		{"over min", MinSize(10), 11, true, ""},
		{"under min", MinSize(10), 0, false, "too small (0 B), the minimum is 10 B"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := tc.rule.Validate(ctx, File{Name: "f.bin", Size: tc.size})
			require.NoError(t, err)
			assert.Equal(t, tc.accepted, outcome.Accepted())
			if tc.reason != "" {
				assert.Contains(t, outcome.Reason(), tc.reason)
			}
		})
	}
}

func TestExtensions(t *testing.T) {
	rule := Extensions(".JPG", "png")
	ctx := context.Background()

	for name, accepted := range map[string]bool{
		"photo.jpg":   true,
		"photo.JPG":   true,
		"scan.png":    true,
		"anim.gif":    false,
		"noextension": false,
		"png":         false,
	} {
		outcome, err := rule.Validate(ctx, File{Name: name})
		require.NoError(t, err)
		assert.Equal(t, accepted, outcome.Accepted(), "Mismatch for %s", name)
	}
}

func TestMimeTypes(t *testing.T) {
	fs, mem := setupPipelineFS(t)
	require.NoError(t, afero.WriteFile(mem, "/staging/img", createTestImage(t, 4, 4), 0600))
	require.NoError(t, afero.WriteFile(mem, "/staging/txt", []byte("plain text, honestly"), 0600))
	ctx := context.Background()

	t.Run("exact match", func(t *testing.T) {
		outcome, err := MimeTypes(fs, "image/png").Validate(ctx, File{Name: "a.png", TempPath: "/staging/img"})
		require.NoError(t, err)
		assert.True(t, outcome.Accepted())
	})

	t.Run("wildcard match", func(t *testing.T) {
		outcome, err := MimeTypes(fs, "image/*").Validate(ctx, File{Name: "a.png", TempPath: "/staging/img"})
		require.NoError(t, err)
		assert.True(t, outcome.Accepted())
	})

	t.Run("declared type is not trusted", func(t *testing.T) {
		f := File{Name: "fake.png", TempPath: "/staging/txt", MimeType: "image/png"}
		outcome, err := MimeTypes(fs, "image/*").Validate(ctx, f)
		require.NoError(t, err)
		assert.False(t, outcome.Accepted())
		assert.Contains(t, outcome.Reason(), `type "text/plain"`)
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := MimeTypes(fs, "image/*").Validate(ctx, File{Name: "gone", TempPath: "/staging/missing"})
		assert.Error(t, err)
	})
}

func TestImageDimensions(t *testing.T) {
	fs, mem := setupPipelineFS(t)
	require.NoError(t, afero.WriteFile(mem, "/staging/img", createTestImage(t, 300, 200), 0600))
	require.NoError(t, afero.WriteFile(mem, "/staging/txt", []byte("not an image"), 0600))
	ctx := context.Background()
	img := File{Name: "a.png", TempPath: "/staging/img"}

	tests := []struct {
		name     string
		rule     ImageDimensions
		accepted bool
		reason   string
	}{
		{"within bounds", ImageDimensions{MinWidth: 100, MinHeight: 100, MaxWidth: 400, MaxHeight: 400}, true, ""},
		{"too narrow", ImageDimensions{MinWidth: 301}, false, "300px wide, the minimum is 301px"},
		{"too short", ImageDimensions{MinHeight: 201}, false, "200px high, the minimum is 201px"},
		{"too wide", ImageDimensions{MaxWidth: 299}, false, "300px wide, the maximum is 299px"},
		{"too high", ImageDimensions{MaxHeight: 199}, false, "200px high, the maximum is 199px"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.rule.Opener = fs
			outcome, err := tc.rule.Validate(ctx, img)
			require.NoError(t, err)
			assert.Equal(t, tc.accepted, outcome.Accepted())
			if tc.reason != "" {
				assert.Contains(t, outcome.Reason(), tc.reason)
			}
		})
	}

	t.Run("not an image", func(t *testing.T) {
		outcome, err := ImageDimensions{Opener: fs, MaxWidth: 10}.Validate(ctx, File{Name: "a.txt", TempPath: "/staging/txt"})
		require.NoError(t, err)
		assert.False(t, outcome.Accepted())
		assert.Contains(t, outcome.Reason(), "not a supported image")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ImageDimensions{Opener: fs}.Validate(ctx, File{Name: "x", TempPath: "/staging/none"})
		assert.Error(t, err)
	})
}
