package skew

import (
	"math"
	"testing"
)

func TestSeriesBasics(t *testing.T) {
	s := newSeries(4)
	if s.count() != 0 {
		t.Fatalf("empty series count: got %d", s.count())
	}
	s.add(-1, 3)
	s.add(0, 9)
	s.add(1, 2)
	if s.count() != 3 {
		t.Fatalf("count: got %d, want 3", s.count())
	}

	if score, i := s.max(); score != 9 || i != 1 {
		t.Errorf("max: got (%g, %d), want (9, 1)", score, i)
	}
	if score, i := s.min(); score != 2 || i != 2 {
		t.Errorf("min: got (%g, %d), want (2, 2)", score, i)
	}

	s.reset()
	if s.count() != 0 {
		t.Errorf("count after reset: got %d", s.count())
	}
}

func TestSeriesTiesGoFirst(t *testing.T) {
	s := newSeries(4)
	s.add(0, 5)
	s.add(1, 7)
	s.add(2, 7)
	s.add(3, 5)

	if _, i := s.max(); i != 1 {
		t.Errorf("tied max index: got %d, want 1", i)
	}
	if _, i := s.min(); i != 0 {
		t.Errorf("tied min index: got %d, want 0", i)
	}
}

func TestFitMaxExactParabola(t *testing.T) {
	// Samples of y = 10 - (x - 0.25)^2; the fit must recover the vertex
	// exactly since three points determine the parabola.
	f := func(x float64) float64 { return 10 - (x-0.25)*(x-0.25) }
	s := newSeries(3)
	for _, x := range []float64{-1, 0, 1} {
		s.add(x, f(x))
	}

	angle, score := s.fitMax()
	if math.Abs(angle-0.25) > 1e-12 {
		t.Errorf("vertex angle: got %g, want 0.25", angle)
	}
	if math.Abs(score-10) > 1e-12 {
		t.Errorf("vertex score: got %g, want 10", score)
	}
}

func TestFitMaxEdge(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64 // expected angle
	}{
		{"max at right end", []float64{1, 2, 3}, 2},
		{"max at left end", []float64{3, 2, 1}, 0},
		{"single sample", []float64{4}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSeries(len(tc.scores))
			for i, sc := range tc.scores {
				s.add(float64(i), sc)
			}
			angle, score := s.fitMax()
			if angle != tc.want {
				t.Errorf("angle: got %g, want %g", angle, tc.want)
			}
			wantScore, _ := s.max()
			if score != wantScore {
				t.Errorf("score: got %g, want %g", score, wantScore)
			}
		})
	}
}
