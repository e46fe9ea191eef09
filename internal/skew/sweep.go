package skew

import (
	"fmt"
	"math"

	"github.com/scandoc/deskew/internal/bitmap"
)

// Sweep estimates the skew angle by uniformly sampling the score over
// [-sweepRange, +sweepRange] degrees in sweepDelta steps at the given
// reduction factor, then fitting a parabola through the best sample and
// its neighbors. It returns the angle in degrees required to deskew,
// clockwise positive.
//
// The result carries no confidence measure; use SweepAndSearch when the
// estimate must be validated.
func Sweep(bm *bitmap.Bitmap, reduction int, sweepRange, sweepDelta float64) (float64, error) {
	if bm == nil {
		return 0, fmt.Errorf("sweep: nil bitmap")
	}
	if !validReduction(reduction) {
		return 0, fmt.Errorf("sweep: reduction %d not in {1,2,4,8}", reduction)
	}
	if sweepRange <= 0 || sweepDelta <= 0 {
		return 0, fmt.Errorf("sweep: range %g and delta %g must be positive degrees",
			sweepRange, sweepDelta)
	}

	work, err := reduceTo(bm, reduction)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}
	if work.Zero() {
		return 0, ErrNoForeground
	}

	nangles := int(2*sweepRange/sweepDelta) + 1
	rec := newSeries(nangles)
	sheared := bitmap.NewTemplate(work)
	for i := 0; i < nangles; i++ {
		theta := -sweepRange + float64(i)*sweepDelta
		if err := bitmap.VShearCorner(sheared, work, theta*deg2rad); err != nil {
			return 0, fmt.Errorf("sweep: %w", err)
		}
		rec.add(theta, diffSquareSum(sheared))
	}

	angle, _ := rec.fitMax()
	return angle, nil
}

const deg2rad = math.Pi / 180
