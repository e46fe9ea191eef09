package skew

import (
	"errors"
	"fmt"

	"github.com/scandoc/deskew/internal/bitmap"
)

var (
	// ErrNoForeground reports that the working image contains no ink at
	// search resolution, so the score surface is flat and no angle can
	// be measured.
	ErrNoForeground = errors.New("image has no foreground pixels")

	// ErrSweepEdge reports that the coarse maximum landed on a sweep
	// boundary: the true peak lies outside the sampled range, or there
	// is no valid peak. Callers should treat this like a
	// zero-confidence result rather than a hard failure.
	ErrSweepEdge = errors.New("score maximum at sweep edge")
)

// Phase identifies which stage of the search produced a sample.
type Phase int

const (
	PhaseSweep  Phase = iota // uniform coarse sweep
	PhaseSearch              // interval-halving refinement
)

func (p Phase) String() string {
	switch p {
	case PhaseSweep:
		return "sweep"
	case PhaseSearch:
		return "search"
	}
	return "unknown"
}

// Config carries the full parameter set for SweepAndSearch. The zero
// value is not valid; start from DefaultConfig.
type Config struct {
	// SweepReduction is the downsampling factor for the coarse sweep,
	// one of 1, 2, 4 or 8.
	SweepReduction int `json:"sweep_reduction"`

	// SearchReduction is the downsampling factor for the refinement
	// phase, one of 1, 2, 4 or 8, and at most SweepReduction.
	SearchReduction int `json:"search_reduction"`

	// SweepCenter is the angle in degrees the sweep is centered on.
	SweepCenter float64 `json:"sweep_center"`

	// SweepRange is half the swept interval in degrees, taken about
	// SweepCenter.
	SweepRange float64 `json:"sweep_range"`

	// SweepDelta is the sweep step in degrees.
	SweepDelta float64 `json:"sweep_delta"`

	// MinRefineDelta is the refinement step in degrees below which the
	// interval halving stops.
	MinRefineDelta float64 `json:"min_refine_delta"`

	// OnSample, when non-nil, observes every score evaluation in both
	// phases. Diagnostic only: it must not mutate anything the search
	// depends on, and it has no effect on the result.
	OnSample func(phase Phase, angle, score float64) `json:"-"`
}

// DefaultConfig returns the parameter set used by Find: sweep at 4x
// reduction over ±5 degrees in 1 degree steps, refinement at 2x
// reduction down to 0.01 degrees.
func DefaultConfig() Config {
	return Config{
		SweepReduction:  DefaultSweepReduction,
		SearchReduction: DefaultSearchReduction,
		SweepRange:      DefaultSweepRange,
		SweepDelta:      DefaultSweepDelta,
		MinRefineDelta:  DefaultMinRefineDelta,
	}
}

// Validate checks the configuration before any computation.
func (c Config) Validate() error {
	if !validReduction(c.SweepReduction) {
		return fmt.Errorf("sweep reduction %d not in {1,2,4,8}", c.SweepReduction)
	}
	if !validReduction(c.SearchReduction) {
		return fmt.Errorf("search reduction %d not in {1,2,4,8}", c.SearchReduction)
	}
	if c.SearchReduction > c.SweepReduction {
		return fmt.Errorf("search reduction %d exceeds sweep reduction %d",
			c.SearchReduction, c.SweepReduction)
	}
	if c.SweepRange <= 0 {
		return fmt.Errorf("sweep range %g must be positive degrees", c.SweepRange)
	}
	if c.SweepDelta <= 0 {
		return fmt.Errorf("sweep delta %g must be positive degrees", c.SweepDelta)
	}
	if c.MinRefineDelta <= 0 {
		return fmt.Errorf("min refine delta %g must be positive degrees", c.MinRefineDelta)
	}
	return nil
}

func (c Config) sample(phase Phase, angle, score float64) {
	if c.OnSample != nil {
		c.OnSample(phase, angle, score)
	}
}

func validReduction(r int) bool {
	return r == 1 || r == 2 || r == 4 || r == 8
}

// reduceTo downsamples a bitmap to 1/factor size with the rank cascade
// schedule used for search images: permissive first levels to keep thin
// strokes, a stricter final level at 8x.
func reduceTo(bm *bitmap.Bitmap, factor int) (*bitmap.Bitmap, error) {
	switch factor {
	case 1:
		return bm.Clone(), nil
	case 2:
		return bitmap.ReduceRankCascade(bm, 1)
	case 4:
		return bitmap.ReduceRankCascade(bm, 1, 1)
	case 8:
		return bitmap.ReduceRankCascade(bm, 1, 1, 2)
	}
	return nil, fmt.Errorf("reduction factor %d not in {1,2,4,8}", factor)
}

// reduceByRatio further downsamples an already reduced search image to
// sweep resolution. The schedule is more erosive than reduceTo because
// the input has already been rank-filtered once.
func reduceByRatio(bm *bitmap.Bitmap, ratio int) (*bitmap.Bitmap, error) {
	switch ratio {
	case 1:
		return bm.Clone(), nil
	case 2:
		return bitmap.ReduceRankCascade(bm, 1)
	case 4:
		return bitmap.ReduceRankCascade(bm, 1, 2)
	case 8:
		return bitmap.ReduceRankCascade(bm, 1, 2, 2)
	}
	return nil, fmt.Errorf("reduction ratio %d not in {1,2,4,8}", ratio)
}
