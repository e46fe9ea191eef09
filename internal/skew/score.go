package skew

import (
	"fmt"

	"github.com/scandoc/deskew/internal/bitmap"
)

// DifferentialSquareSum scores how well foreground rows align with scan
// rows. It sums the per-row foreground pixel counts, drops a band of rows
// at the top and bottom, and returns the sum of squared differences
// between consecutive row counts over the interior rows.
//
// The differential form cancels the constant bias from total ink
// coverage; the score peaks when text baselines run parallel to the
// raster. The omitted band suppresses the spurious edge signal a nearly
// solid image produces when sheared.
func DifferentialSquareSum(bm *bitmap.Bitmap) (float64, error) {
	if bm == nil {
		return 0, fmt.Errorf("differential square sum: nil bitmap")
	}
	return diffSquareSum(bm), nil
}

func diffSquareSum(bm *bitmap.Bitmap) float64 {
	sums := bm.RowSums()
	w, h := bm.Width, bm.Height

	// Rows to omit at each end: at most 10% of the height, scaled to
	// the worst-case vertical displacement of a small-angle shear, and
	// always at least one row so sums[i-1] is in range.
	skip := min(h/10, int(0.05*float64(w)+0.5))
	nskip := max(skip/2, 1)

	total := 0.0
	for i := nskip; i < h-nskip; i++ {
		d := float64(sums[i] - sums[i-1])
		total += d * d
	}
	return total
}
