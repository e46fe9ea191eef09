package skew

import (
	"errors"
	"fmt"
	"math"

	"github.com/scandoc/deskew/internal/bitmap"
)

// Default search parameters, in degrees unless noted.
const (
	DefaultSweepRange      = 5.0  // half the swept interval
	DefaultSweepDelta      = 1.0  // coarse sweep step
	DefaultMinRefineDelta  = 0.01 // refinement stop threshold
	DefaultSweepReduction  = 4    // downsampling for the sweep phase
	DefaultSearchReduction = 2    // downsampling for the refinement phase

	// MinDeskewAngle is the smallest measured angle worth correcting;
	// below it FindAndDeskew returns the page unrotated.
	MinDeskewAngle = 0.1

	// MinConfidence is the smallest max/min score ratio FindAndDeskew
	// accepts before applying a rotation.
	MinConfidence = 3.0
)

const (
	// Peak scores below this are noise regardless of the ratio.
	minValidMaxScore = 10000.0

	// Multiplied by width^2 * height of the search image to form the
	// floor the minimum score must clear for a nonzero confidence.
	minScoreThresholdConstant = 2.0e-6
)

// Find measures the skew of a bilevel page with the default search
// parameters and returns the angle in degrees required to deskew,
// clockwise positive, with its confidence. A confidence of 0 means the
// angle is undetermined.
func Find(bm *bitmap.Bitmap) (Estimate, error) {
	if bm == nil {
		return Estimate{}, fmt.Errorf("find skew: nil bitmap")
	}
	return SweepAndSearch(bm, DefaultConfig())
}

// FindAndDeskew measures the skew of a page and, when the measurement is
// trustworthy and the angle large enough to matter, returns a rotated
// copy along with the estimate. In every other case, including a failed
// or rejected search and a failed rotation, it returns an unrotated copy
// so the caller always receives a usable page.
//
// redsearch is the refinement-phase reduction factor and must be 1, 2
// or 4.
func FindAndDeskew(bm *bitmap.Bitmap, redsearch int) (*bitmap.Bitmap, Estimate, error) {
	if bm == nil {
		return nil, Estimate{}, fmt.Errorf("find and deskew: nil bitmap")
	}
	if redsearch != 1 && redsearch != 2 && redsearch != 4 {
		return nil, Estimate{}, fmt.Errorf("find and deskew: reduction %d not in {1,2,4}", redsearch)
	}

	cfg := DefaultConfig()
	cfg.SearchReduction = redsearch

	est, err := SweepAndSearch(bm, cfg)
	if err != nil {
		if errors.Is(err, ErrNoForeground) || errors.Is(err, ErrSweepEdge) {
			return bm.Clone(), est, nil
		}
		return nil, Estimate{}, err
	}

	if math.Abs(est.Angle) < MinDeskewAngle || est.Confidence < MinConfidence {
		return bm.Clone(), est, nil
	}

	rotated, err := bitmap.Rotate(bm, est.Angle*deg2rad)
	if err != nil {
		return bm.Clone(), est, nil
	}
	return rotated, est, nil
}

// Deskew corrects the skew of a bilevel page, returning a rotated copy
// when a trustworthy angle was found and an unrotated copy otherwise.
// redsearch must be 1, 2 or 4.
func Deskew(bm *bitmap.Bitmap, redsearch int) (*bitmap.Bitmap, error) {
	if bm == nil {
		return nil, fmt.Errorf("deskew: nil bitmap")
	}
	if redsearch != 1 && redsearch != 2 && redsearch != 4 {
		return nil, fmt.Errorf("deskew: reduction %d not in {1,2,4}", redsearch)
	}
	out, _, err := FindAndDeskew(bm, redsearch)
	return out, err
}
