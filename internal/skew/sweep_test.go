package skew

import (
	"errors"
	"math"
	"testing"

	"github.com/scandoc/deskew/internal/bitmap"
)

// stripePage builds a page of full-width one-pixel rules every period
// rows, a worst-case strong signal for row alignment.
func stripePage(w, h, period int) *bitmap.Bitmap {
	bm := bitmap.New(w, h)
	for y := 0; y < h; y += period {
		for x := 0; x < w; x++ {
			bm.Set(x, y, 1)
		}
	}
	return bm
}

// textPage builds a page that looks like running text: bands of ink a
// few rows tall on a regular pitch, with varying indents and lengths.
func textPage(w, h int) *bitmap.Bitmap {
	bm := bitmap.New(w, h)
	i := 0
	for y0 := 40; y0+4 < h-40; y0 += 12 {
		start := 40 + (i*37)%80
		width := w/2 + (i*53)%120
		for dy := 0; dy < 4; dy++ {
			for x := start; x < start+width && x < w; x++ {
				bm.Set(x, y0+dy, 1)
			}
		}
		i++
	}
	return bm
}

// tilt shears the page vertically by the given angle in degrees,
// simulating a skewed scan. A page tilted by -a deskews at +a.
func tilt(t *testing.T, bm *bitmap.Bitmap, degrees float64) *bitmap.Bitmap {
	t.Helper()
	out := bitmap.NewTemplate(bm)
	if err := bitmap.VShearCorner(out, bm, degrees*deg2rad); err != nil {
		t.Fatalf("tilting test page: %v", err)
	}
	return out
}

func TestSweepValidation(t *testing.T) {
	bm := bitmap.New(16, 16)
	bm.Set(8, 8, 1)

	tests := []struct {
		name       string
		bm         *bitmap.Bitmap
		reduction  int
		rng, delta float64
	}{
		{"nil bitmap", nil, 1, 5, 1},
		{"bad reduction", bm, 3, 5, 1},
		{"zero range", bm, 1, 0, 1},
		{"negative delta", bm, 1, 5, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Sweep(tc.bm, tc.reduction, tc.rng, tc.delta); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSweepBlank(t *testing.T) {
	if _, err := Sweep(bitmap.New(64, 64), 1, 5, 1); !errors.Is(err, ErrNoForeground) {
		t.Errorf("got %v, want ErrNoForeground", err)
	}
}

func TestSweepFindsStripeAngle(t *testing.T) {
	page := tilt(t, stripePage(400, 400, 8), -2)

	angle, err := Sweep(page, 1, 5, 1)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if math.Abs(angle-2.0) > 0.5 {
		t.Errorf("angle: got %g, want about 2.0", angle)
	}
}

func TestSweepReducedStillFinds(t *testing.T) {
	page := tilt(t, stripePage(400, 400, 8), -2)

	angle, err := Sweep(page, 4, 5, 1)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if math.Abs(angle-2.0) > 0.75 {
		t.Errorf("angle at 4x reduction: got %g, want about 2.0", angle)
	}
}
