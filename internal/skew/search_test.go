package skew

import (
	"errors"
	"math"
	"testing"

	"github.com/scandoc/deskew/internal/bitmap"
)

// fullResConfig keeps both phases at the input resolution so tests can
// reason about scores on the pages they construct.
func fullResConfig() Config {
	cfg := DefaultConfig()
	cfg.SweepReduction = 1
	cfg.SearchReduction = 1
	return cfg
}

func TestSweepAndSearchValidation(t *testing.T) {
	bm := bitmap.New(16, 16)
	bm.Set(8, 8, 1)

	if _, err := SweepAndSearch(nil, DefaultConfig()); err == nil {
		t.Error("accepted nil bitmap")
	}

	bad := DefaultConfig()
	bad.SweepDelta = 0
	if _, err := SweepAndSearch(bm, bad); err == nil {
		t.Error("accepted zero sweep delta")
	}

	bad = DefaultConfig()
	bad.SearchReduction = 8 // exceeds the 4x sweep reduction
	if _, err := SweepAndSearch(bm, bad); err == nil {
		t.Error("accepted search reduction coarser than sweep")
	}
}

func TestSweepAndSearchBlank(t *testing.T) {
	cfg := fullResConfig()
	fired := false
	cfg.OnSample = func(Phase, float64, float64) { fired = true }

	_, err := SweepAndSearch(bitmap.New(128, 128), cfg)
	if !errors.Is(err, ErrNoForeground) {
		t.Fatalf("got %v, want ErrNoForeground", err)
	}
	if fired {
		t.Error("score was evaluated on a blank image")
	}
}

func TestSweepAndSearchEvaluationSchedule(t *testing.T) {
	// With range 5 and delta 1 the sweep takes 11 samples. The
	// refinement bootstraps 3 and adds 2 per halving; halving from 0.5
	// down to a 0.01 floor runs 6 iterations, so 15 in total.
	page := tilt(t, stripePage(400, 400, 8), -2)

	tests := []struct {
		name           string
		delta, minStep float64
		wantSweep      int
		wantSearch     int
	}{
		{"defaults", 1.0, 0.01, 11, 15},
		{"coarse floor", 2.0, 0.05, 6, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := fullResConfig()
			cfg.SweepDelta = tc.delta
			cfg.MinRefineDelta = tc.minStep

			var sweepN, searchN int
			cfg.OnSample = func(phase Phase, _, _ float64) {
				switch phase {
				case PhaseSweep:
					sweepN++
				case PhaseSearch:
					searchN++
				}
			}

			if _, err := SweepAndSearch(page, cfg); err != nil {
				t.Fatalf("SweepAndSearch: %v", err)
			}
			if sweepN != tc.wantSweep {
				t.Errorf("sweep samples: got %d, want %d", sweepN, tc.wantSweep)
			}
			if searchN != tc.wantSearch {
				t.Errorf("search samples: got %d, want %d", searchN, tc.wantSearch)
			}
		})
	}
}

func TestSweepAndSearchConverges(t *testing.T) {
	// The page is tilted exactly -2 degrees, so the score surface peaks
	// at the sweep sample 2.0 and the refinement must stay there.
	page := tilt(t, stripePage(400, 400, 8), -2)

	est, err := SweepAndSearch(page, fullResConfig())
	if err != nil {
		t.Fatalf("SweepAndSearch: %v", err)
	}
	if math.Abs(est.Angle-2.0) > 0.02 {
		t.Errorf("angle: got %g, want 2.0", est.Angle)
	}
	if est.Confidence < MinConfidence {
		t.Errorf("confidence: got %g, want at least %g", est.Confidence, MinConfidence)
	}
	if est.MaxScore == nil {
		t.Fatal("max score missing after a completed refinement")
	}
	if *est.MaxScore < minValidMaxScore {
		t.Errorf("max score: got %g, want at least %g", *est.MaxScore, minValidMaxScore)
	}
}

func TestSweepAndSearchFractionalAngle(t *testing.T) {
	// An angle off the sweep grid still resolves to refinement
	// precision.
	page := tilt(t, stripePage(400, 400, 8), -2.5)

	est, err := SweepAndSearch(page, fullResConfig())
	if err != nil {
		t.Fatalf("SweepAndSearch: %v", err)
	}
	if math.Abs(est.Angle-2.5) > 0.05 {
		t.Errorf("angle: got %g, want about 2.5", est.Angle)
	}
}

func TestSweepAndSearchEdgeMax(t *testing.T) {
	// Tilted by -4.6 degrees: the best sweep sample is the boundary
	// angle 5, so the peak cannot be bracketed.
	page := tilt(t, stripePage(400, 400, 8), -4.6)

	est, err := SweepAndSearch(page, fullResConfig())
	if !errors.Is(err, ErrSweepEdge) {
		t.Fatalf("got %v, want ErrSweepEdge", err)
	}
	if est.Angle != 0 || est.Confidence != 0 || est.MaxScore != nil {
		t.Errorf("edge result not zero valued: %+v", est)
	}
}

func TestSweepAndSearchBoundaryConfidence(t *testing.T) {
	// Tilted by -4.2 degrees: the sweep peak at 4 is interior, but the
	// refined center lands within one sweep step of the range end, so
	// the confidence is dropped while the angle is still reported.
	page := tilt(t, stripePage(400, 400, 8), -4.2)

	est, err := SweepAndSearch(page, fullResConfig())
	if err != nil {
		t.Fatalf("SweepAndSearch: %v", err)
	}
	if math.Abs(est.Angle-4.2) > 0.1 {
		t.Errorf("angle: got %g, want about 4.2", est.Angle)
	}
	if est.Confidence != 0 {
		t.Errorf("confidence: got %g, want 0 near the sweep boundary", est.Confidence)
	}
}

func TestSweepAndSearchWeakSignal(t *testing.T) {
	// A page with almost no ink produces a peak score below the
	// validity floor, so the confidence must be 0 even though the
	// stripes are perfectly aligned.
	page := stripePage(40, 40, 16)

	est, err := SweepAndSearch(page, fullResConfig())
	if err != nil {
		t.Fatalf("SweepAndSearch: %v", err)
	}
	if est.Confidence != 0 {
		t.Errorf("confidence: got %g, want 0 for a weak peak", est.Confidence)
	}
	if est.MaxScore == nil || *est.MaxScore >= minValidMaxScore {
		t.Error("test page unexpectedly produced a strong peak")
	}
}

func TestSweepAndSearchCenterOffset(t *testing.T) {
	// Centering the sweep on 6 degrees brings a large tilt into range.
	page := tilt(t, stripePage(400, 400, 8), -6)

	cfg := fullResConfig()
	cfg.SweepCenter = 6

	est, err := SweepAndSearch(page, cfg)
	if err != nil {
		t.Fatalf("SweepAndSearch: %v", err)
	}
	if math.Abs(est.Angle-6.0) > 0.02 {
		t.Errorf("angle: got %g, want 6.0", est.Angle)
	}
}
