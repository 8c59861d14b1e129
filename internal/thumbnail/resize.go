// filepath: internal/thumbnail/resize.go
package thumbnail

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ParseInterpolation maps a config name to an x/image/draw interpolator.
func ParseInterpolation(name string) (draw.Interpolator, error) {
	switch name {
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear", "":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown interpolation %q", name)
	}
}

// resize applies the thumbnail policy: a landscape box (width > height)
// scales the image to fit inside it, anything else crops to fill it exactly.
func resize(src image.Image, width, height int, s draw.Scaler) image.Image {
	if width > height {
		return fit(src, width, height, s)
	}
	return fill(src, width, height, s)
}

// fit scales src to fit within maxW x maxH keeping its aspect ratio.
// Images already inside the box are not enlarged.
func fit(src image.Image, maxW, maxH int, s draw.Scaler) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	var newW, newH int
	// Determine which side is the limiting factor
	if w*maxH > h*maxW {
		newW = maxW
		newH = scaleSide(h, maxW, w, maxH)
	} else {
		newH = maxH
		newW = scaleSide(w, maxH, h, maxW)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	s.Scale(dst, dst.Rect, src, b, draw.Src, nil)
	return dst
}

// fill crops src around its center to the target aspect ratio and scales the
// crop to exactly width x height.
func fill(src image.Image, width, height int, s draw.Scaler) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	crop := b
	if w*height > h*width {
		// Source is wider than the target: trim left and right
		cw := scaleSide(h, width, height, w)
		x0 := b.Min.X + (w-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else if w*height < h*width {
		// Source is taller than the target: trim top and bottom
		ch := scaleSide(w, height, width, h)
		y0 := b.Min.Y + (h-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Rect, src, crop, draw.Src, nil)
	return dst
}

// scaleSide returns round(side*num/den) clamped to [1, limit].
func scaleSide(side, num, den, limit int) int {
	v := int(math.Round(float64(side) * float64(num) / float64(den)))
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}
