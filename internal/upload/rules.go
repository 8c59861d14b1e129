// filepath: internal/upload/rules.go
package upload

import (
	"context"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"

	// Register decoders for dimension checks
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	_ "golang.org/x/image/webp"
)

// Outcome is the verdict of a single rule: accepted, or rejected with a reason.
type Outcome struct {
	rejected bool
	reason   string
}

// Accept returns an accepting outcome.
func Accept() Outcome {
	return Outcome{}
}

// Reject returns a rejecting outcome with a human-readable reason.
func Reject(format string, args ...any) Outcome {
	return Outcome{rejected: true, reason: fmt.Sprintf(format, args...)}
}

// Accepted reports whether the rule accepted the file.
func (o Outcome) Accepted() bool {
	return !o.rejected
}

// Reason returns the rejection reason, empty when accepted.
func (o Outcome) Reason() string {
	return o.reason
}

// Rule checks one staged file. Expected rejections are returned as an
// Outcome; the error is reserved for failures such as unreadable files.
type Rule interface {
	Validate(ctx context.Context, f File) (Outcome, error)
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(ctx context.Context, f File) (Outcome, error)

func (fn RuleFunc) Validate(ctx context.Context, f File) (Outcome, error) {
	return fn(ctx, f)
}

// Opener gives content-inspecting rules access to staged files.
type Opener interface {
	Open(path string) (afero.File, error)
}

// MaxSize rejects files larger than limit bytes.
func MaxSize(limit int64) Rule {
	return RuleFunc(func(_ context.Context, f File) (Outcome, error) {
		if f.Size > limit {
			return Reject("file %q is too large (%s), the limit is %s",
				f.Name, humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(limit))), nil
		}
		return Accept(), nil
	})
}

// MinSize rejects files smaller than limit bytes.
func MinSize(limit int64) Rule {
	return RuleFunc(func(_ context.Context, f File) (Outcome, error) {
		if f.Size < limit {
			return Reject("file %q is too small (%s), the minimum is %s",
				f.Name, humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(limit))), nil
		}
		return Accept(), nil
	})
}

// Extensions accepts only the listed extensions, compared case-insensitively.
func Extensions(exts ...string) Rule {
	allowed := make([]string, 0, len(exts))
	for _, e := range exts {
		allowed = append(allowed, strings.ToLower(strings.TrimPrefix(e, ".")))
	}
	return RuleFunc(func(_ context.Context, f File) (Outcome, error) {
		ext := strings.ToLower(f.Extension())
		if !slices.Contains(allowed, ext) {
			return Reject("file %q has extension %q, allowed: %s", f.Name, ext, strings.Join(allowed, ", ")), nil
		}
		return Accept(), nil
	})
}

// MimeTypes accepts files whose sniffed content type is listed. Entries
// like "image/*" match a whole top-level type. The client's declared type
// is not trusted.
func MimeTypes(opener Opener, types ...string) Rule {
	return RuleFunc(func(_ context.Context, f File) (Outcome, error) {
		detected, err := sniff(opener, f.TempPath)
		if err != nil {
			return Outcome{}, fmt.Errorf("could not read %q for type detection: %w", f.Name, err)
		}
		for _, t := range types {
			if matchMime(t, detected) {
				return Accept(), nil
			}
		}
		return Reject("file %q has type %q, allowed: %s", f.Name, detected, strings.Join(types, ", ")), nil
	})
}

func sniff(opener Opener, path string) (string, error) {
	file, err := opener.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(buf[:n]))
	if err != nil {
		return "", err
	}
	return mediaType, nil
}

func matchMime(pattern, actual string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(actual, prefix+"/")
	}
	return pattern == actual
}

// ImageDimensions checks pixel bounds by decoding only the image header.
// Zero bounds are not enforced.
type ImageDimensions struct {
	Opener    Opener
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

func (r ImageDimensions) Validate(_ context.Context, f File) (Outcome, error) {
	file, err := r.Opener.Open(f.TempPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("could not open %q: %w", f.Name, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Reject("file %q is not a supported image", f.Name), nil
	}

	switch {
	case r.MinWidth > 0 && cfg.Width < r.MinWidth:
		return Reject("image %q is %dpx wide, the minimum is %dpx", f.Name, cfg.Width, r.MinWidth), nil
	case r.MinHeight > 0 && cfg.Height < r.MinHeight:
		return Reject("image %q is %dpx high, the minimum is %dpx", f.Name, cfg.Height, r.MinHeight), nil
	case r.MaxWidth > 0 && cfg.Width > r.MaxWidth:
		return Reject("image %q is %dpx wide, the maximum is %dpx", f.Name, cfg.Width, r.MaxWidth), nil
	case r.MaxHeight > 0 && cfg.Height > r.MaxHeight:
		return Reject("image %q is %dpx high, the maximum is %dpx", f.Name, cfg.Height, r.MaxHeight), nil
	}
	return Accept(), nil
}
