package skew

import (
	"fmt"

	"github.com/scandoc/deskew/internal/bitmap"
)

// Estimate is the result of a skew search. Angle is the rotation in
// degrees required to deskew the page, clockwise positive. Confidence is
// the ratio of the maximum to minimum refinement score; 0 means the
// angle must not be trusted. MaxScore is the raw peak score, present
// only when the refinement phase ran, for callers that want to judge the
// angle independently of the confidence gates.
type Estimate struct {
	Angle      float64  `json:"angle"`
	Confidence float64  `json:"confidence"`
	MaxScore   *float64 `json:"max_score,omitempty"`
}

// SweepAndSearch finds the skew angle in two phases: a coarse uniform
// sweep at sweep resolution, then an interval-halving refinement at
// search resolution seeded from the best sweep sample. Each refinement
// iteration evaluates two new angles around the current center, keeps a
// five-point window bracketing the peak, and halves the step until it
// falls below cfg.MinRefineDelta.
//
// When the working image is blank it returns ErrNoForeground before any
// angle is evaluated. When the sweep maximum lands on a boundary it
// returns ErrSweepEdge with a zero-value estimate and no confidence
// computed; callers should treat that like a zero-confidence result.
func SweepAndSearch(bm *bitmap.Bitmap, cfg Config) (Estimate, error) {
	if bm == nil {
		return Estimate{}, fmt.Errorf("sweep and search: nil bitmap")
	}
	if err := cfg.Validate(); err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}

	// Working image for refinement, then a further reduction of it for
	// the sweep. Both are freshly allocated; the caller's bitmap is
	// never touched.
	searchPix, err := reduceTo(bm, cfg.SearchReduction)
	if err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}
	if searchPix.Zero() {
		return Estimate{}, ErrNoForeground
	}
	sweepPix, err := reduceByRatio(searchPix, cfg.SweepReduction/cfg.SearchReduction)
	if err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}

	shearedSweep := bitmap.NewTemplate(sweepPix)
	shearedSearch := bitmap.NewTemplate(searchPix)

	// Coarse sweep.
	nangles := int(2*cfg.SweepRange/cfg.SweepDelta) + 1
	rangeLeft := cfg.SweepCenter - cfg.SweepRange
	rec := newSeries(nangles)
	for i := 0; i < nangles; i++ {
		theta := rangeLeft + float64(i)*cfg.SweepDelta
		if err := bitmap.VShearCorner(shearedSweep, sweepPix, theta*deg2rad); err != nil {
			return Estimate{}, fmt.Errorf("sweep and search: %w", err)
		}
		score := diffSquareSum(shearedSweep)
		rec.add(theta, score)
		cfg.sample(PhaseSweep, theta, score)
	}

	_, maxIndex := rec.max()
	if maxIndex == 0 || maxIndex == rec.count()-1 {
		return Estimate{}, ErrSweepEdge
	}
	center := rec.angles[maxIndex]

	// The refinement series replaces the sweep series; the confidence
	// floor below is computed from refinement scores only.
	rec.reset()

	eval := func(angle float64) (float64, error) {
		if err := bitmap.VShearCorner(shearedSearch, searchPix, angle*deg2rad); err != nil {
			return 0, err
		}
		score := diffSquareSum(shearedSearch)
		rec.add(angle, score)
		cfg.sample(PhaseSearch, angle, score)
		return score, nil
	}

	// Five-slot window around the current center: slots 0, 2, 4 hold
	// scores at center-sweepDelta, center, center+sweepDelta; slots 1
	// and 3 are filled each iteration at center+-delta.
	var window [5]float64
	if window[2], err = eval(center); err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}
	if window[0], err = eval(center - cfg.SweepDelta); err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}
	if window[4], err = eval(center + cfg.SweepDelta); err != nil {
		return Estimate{}, fmt.Errorf("sweep and search: %w", err)
	}

	for delta := 0.5 * cfg.SweepDelta; delta >= cfg.MinRefineDelta; delta *= 0.5 {
		if window[1], err = eval(center - delta); err != nil {
			return Estimate{}, fmt.Errorf("sweep and search: %w", err)
		}
		if window[3], err = eval(center + delta); err != nil {
			return Estimate{}, fmt.Errorf("sweep and search: %w", err)
		}

		// The peak is interior to the window by construction, so only
		// slots 1..3 can hold the maximum. Ties go to the lowest slot.
		best := 1
		for i := 2; i <= 3; i++ {
			if window[i] > window[best] {
				best = i
			}
		}

		// Re-center: the winner's neighbors become the new outer
		// slots and the winner the new center.
		left, right := window[best-1], window[best+1]
		window[2] = window[best]
		window[0] = left
		window[4] = right
		center += delta * float64(best-2)
	}

	maxScore := window[2]

	// A confidence of max/min is only meaningful when the minimum score
	// is a real floor. On near-blank or near-solid images the minimum
	// collapses toward zero at zero shear, so gate it against a
	// threshold scaled by the expected signal, width^2 * height.
	minScore, _ := rec.min()
	minThresh := minScoreThresholdConstant *
		float64(searchPix.Width) * float64(searchPix.Width) * float64(searchPix.Height)

	conf := 0.0
	if minScore > minThresh {
		conf = maxScore / minScore
	}
	if center > rangeLeft+2*cfg.SweepRange-cfg.SweepDelta ||
		center < rangeLeft+cfg.SweepDelta ||
		maxScore < minValidMaxScore {
		conf = 0.0
	}

	return Estimate{Angle: center, Confidence: conf, MaxScore: &maxScore}, nil
}
