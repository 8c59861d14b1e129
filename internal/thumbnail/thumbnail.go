// filepath: internal/thumbnail/thumbnail.go
// Package thumbnail derives resized images from stored originals.
package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filekit/internal/filesystem"
	"filekit/internal/logging"

	// Extra source formats
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidDimensions = errors.New("invalid thumbnail dimensions")
	ErrUnsupportedFormat = errors.New("unsupported thumbnail format")
	ErrInvalidName       = errors.New("invalid thumbnail name")
)

// Request describes one thumbnail to derive from Source.
type Request struct {
	Source    string
	Width     int
	Height    int
	Directory string
	Name      string // extension selects the output format
}

// Generator writes thumbnails through a FileSystem.
type Generator struct {
	fs      *filesystem.FileSystem
	scaler  draw.Scaler
	quality int
	mode    *os.FileMode
}

// Option configures a Generator.
type Option func(*Generator)

// WithScaler selects the interpolation used for resizing.
func WithScaler(s draw.Scaler) Option {
	return func(g *Generator) { g.scaler = s }
}

// WithJPEGQuality sets the quality of JPEG output (1-100).
func WithJPEGQuality(q int) Option {
	return func(g *Generator) { g.quality = q }
}

// WithFileMode applies mode to every written thumbnail.
func WithFileMode(mode *os.FileMode) Option {
	return func(g *Generator) { g.mode = mode }
}

// NewGenerator creates a Generator with ApproxBiLinear scaling and JPEG quality 85.
func NewGenerator(fs *filesystem.FileSystem, opts ...Option) *Generator {
	g := &Generator{
		fs:      fs,
		scaler:  draw.ApproxBiLinear,
		quality: 85,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the thumbnail for req and returns its path. The file is
// encoded into a temp file first and moved into place when complete.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return "", fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, req.Width, req.Height)
	}
	if req.Name == "" || strings.ContainsAny(req.Name, `/\`) || req.Name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, req.Name)
	}
	encode, err := encoderFor(req.Name, g.quality)
	if err != nil {
		return "", err
	}

	src, err := g.decode(req.Source)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	thumb := resize(src, req.Width, req.Height, g.scaler)

	if _, err := g.fs.PrepareDirectory(req.Directory); err != nil {
		return "", err
	}

	tmp, err := g.fs.CreateTempFile("thumb-")
	if err != nil {
		return "", err
	}
	if err := g.write(tmp, thumb, encode); err != nil {
		if delErr := g.fs.DeleteFile(tmp); delErr != nil {
			logging.Log.Warnf("Thumbnail: could not remove temp file %s: %v", tmp, delErr)
		}
		return "", err
	}

	dest, err := g.fs.MoveFile(tmp, filepath.Join(req.Directory, req.Name), g.mode)
	if err != nil {
		if dest == "" || !errors.Is(err, filesystem.ErrFileMode) {
			if delErr := g.fs.DeleteFile(tmp); delErr != nil {
				logging.Log.Warnf("Thumbnail: could not remove temp file %s: %v", tmp, delErr)
			}
			return "", err
		}
		logging.Log.Warnf("Thumbnail: wrote %s but could not set its mode: %v", dest, err)
	}

	b := thumb.Bounds()
	logging.Log.Debugf("Thumbnail: %s -> %s (%dx%d)", req.Source, dest, b.Dx(), b.Dy())
	return dest, nil
}

func (g *Generator) decode(path string) (image.Image, error) {
	f, err := g.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode source image %s: %w", ErrUnsupportedFormat, path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot create thumbnail for zero-dimension image %s", path)
	}
	return img, nil
}

func (g *Generator) write(path string, img image.Image, encode encoderFunc) error {
	out, err := g.fs.Create(path)
	if err != nil {
		return fmt.Errorf("could not create thumbnail file: %w", err)
	}
	if err := encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return out.Close()
}

type encoderFunc func(w io.Writer, img image.Image) error

// encoderFor picks the output encoder from the destination extension.
func encoderFor(name string, quality int) (encoderFunc, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case ".png":
		return png.Encode, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}
