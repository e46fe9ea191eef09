package bitmap

// Bitmap is a bilevel raster with one byte per pixel, row-major, where
// 1 is a foreground (ink) pixel and 0 is background. The layout mirrors
// image.Gray so conversion in either direction is a single pass.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New creates a bitmap of the given size with every pixel background.
// Width and height must be positive.
func New(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// NewTemplate creates a blank bitmap with the same dimensions as src.
func NewTemplate(src *Bitmap) *Bitmap {
	return New(src.Width, src.Height)
}

// Clone returns a deep copy of the bitmap. The copy shares no storage
// with the original.
func (b *Bitmap) Clone() *Bitmap {
	dst := New(b.Width, b.Height)
	copy(dst.Pix, b.Pix)
	return dst
}

// Get returns the pixel at (x, y): 1 for foreground, 0 for background.
// Coordinates outside the bitmap read as background.
func (b *Bitmap) Get(x, y int) uint8 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y). Values other than 0 are stored as 1.
// Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, v uint8) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	if v != 0 {
		v = 1
	}
	b.Pix[y*b.Width+x] = v
}

// Zero reports whether the bitmap contains no foreground pixels.
func (b *Bitmap) Zero() bool {
	for _, p := range b.Pix {
		if p != 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, p := range b.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// RowSums returns the number of foreground pixels in each row, top to
// bottom. The result has length Height.
func (b *Bitmap) RowSums() []int {
	sums := make([]int, b.Height)
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		n := 0
		for _, p := range row {
			if p != 0 {
				n++
			}
		}
		sums[y] = n
	}
	return sums
}

// Equal reports whether two bitmaps have identical dimensions and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
