// filepath: internal/thumbnail/config.go
package thumbnail

import (
	"filekit/internal/config"
	"filekit/internal/filesystem"
)

// NewGeneratorFromConfig wires a generator with the configured interpolation,
// JPEG quality and file mode.
func NewGeneratorFromConfig(cfg *config.Config, fs *filesystem.FileSystem) (*Generator, error) {
	scaler, err := ParseInterpolation(cfg.Thumbnail.Interpolation)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithScaler(scaler), WithFileMode(cfg.FileMode)}
	if cfg.Thumbnail.JPEGQuality > 0 {
		opts = append(opts, WithJPEGQuality(cfg.Thumbnail.JPEGQuality))
	}
	return NewGenerator(fs, opts...), nil
}
