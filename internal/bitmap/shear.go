package bitmap

import (
	"fmt"
	"math"
)

// VShearCorner shears src vertically about its upper-left corner by the
// given angle in radians and writes the result into dst, which must have
// the same dimensions as src. Column x is displaced downward by
// round(x*tan(angle)) for positive angles; pixels brought into frame are
// background.
func VShearCorner(dst, src *Bitmap, radians float64) error {
	if dst == nil || src == nil {
		return fmt.Errorf("vshear: nil bitmap")
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("vshear: size mismatch: %dx%d vs %dx%d",
			dst.Width, dst.Height, src.Width, src.Height)
	}
	vShearBy(dst, src, math.Tan(radians))
	return nil
}

// HShearCorner shears src horizontally about its upper-left corner by the
// given angle in radians and writes the result into dst. Row y is
// displaced rightward by round(y*tan(angle)) for positive angles; pixels
// brought into frame are background.
func HShearCorner(dst, src *Bitmap, radians float64) error {
	if dst == nil || src == nil {
		return fmt.Errorf("hshear: nil bitmap")
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("hshear: size mismatch: %dx%d vs %dx%d",
			dst.Width, dst.Height, src.Width, src.Height)
	}
	hShearBy(dst, src, math.Tan(radians))
	return nil
}

// Rotate rotates src about its upper-left corner by the given angle in
// radians, clockwise positive in raster coordinates, returning a new
// bitmap of the same size. The rotation is composed from three shears
// (horizontal, vertical, horizontal), the standard decomposition for
// raster rotation without resampling; pixels brought into frame are
// background.
func Rotate(src *Bitmap, radians float64) (*Bitmap, error) {
	if src == nil {
		return nil, fmt.Errorf("rotate: nil bitmap")
	}
	if radians == 0 {
		return src.Clone(), nil
	}

	// R(a) = Sx(-tan(a/2)) * Sy(sin a) * Sx(-tan(a/2)) in raster
	// coordinates with y increasing downward.
	hfactor := -math.Tan(radians / 2)
	vfactor := math.Sin(radians)

	t1 := NewTemplate(src)
	hShearBy(t1, src, hfactor)
	t2 := NewTemplate(src)
	vShearBy(t2, t1, vfactor)
	dst := NewTemplate(src)
	hShearBy(dst, t2, hfactor)
	return dst, nil
}

// vShearBy displaces column x downward by round(factor*x). The invariant
// column is x = 0.
func vShearBy(dst, src *Bitmap, factor float64) {
	w, h := src.Width, src.Height
	shifts := make([]int, w)
	for x := 0; x < w; x++ {
		shifts[x] = int(math.Round(factor * float64(x)))
	}
	for y := 0; y < h; y++ {
		drow := dst.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sy := y - shifts[x]
			if sy < 0 || sy >= h {
				drow[x] = 0
				continue
			}
			drow[x] = src.Pix[sy*w+x]
		}
	}
}

// hShearBy displaces row y rightward by round(factor*y). The invariant
// row is y = 0.
func hShearBy(dst, src *Bitmap, factor float64) {
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		shift := int(math.Round(factor * float64(y)))
		srow := src.Pix[y*w : (y+1)*w]
		drow := dst.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sx := x - shift
			if sx < 0 || sx >= w {
				drow[x] = 0
				continue
			}
			drow[x] = srow[sx]
		}
	}
}
