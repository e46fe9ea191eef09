package skew

import "gonum.org/v1/gonum/floats"

// Sample is one evaluated point on the score surface.
type Sample struct {
	Angle float64 `json:"angle"` // trial angle in degrees
	Score float64 `json:"score"`
}

// series records angle/score pairs in evaluation order. The sweep phase
// appends monotonically increasing angles; the refinement phase
// interleaves. A series lives for one search call and is only consulted
// for its extrema.
type series struct {
	angles []float64
	scores []float64
}

func newSeries(capacity int) *series {
	return &series{
		angles: make([]float64, 0, capacity),
		scores: make([]float64, 0, capacity),
	}
}

func (s *series) add(angle, score float64) {
	s.angles = append(s.angles, angle)
	s.scores = append(s.scores, score)
}

func (s *series) count() int {
	return len(s.scores)
}

func (s *series) reset() {
	s.angles = s.angles[:0]
	s.scores = s.scores[:0]
}

// max returns the largest score and its position. The series must be
// non-empty.
func (s *series) max() (float64, int) {
	i := floats.MaxIdx(s.scores)
	return s.scores[i], i
}

// min returns the smallest score and its position. The series must be
// non-empty.
func (s *series) min() (float64, int) {
	i := floats.MinIdx(s.scores)
	return s.scores[i], i
}

// fitMax refines the peak location by fitting a parabola through the
// maximum sample and its two neighbors (Lagrange interpolation),
// returning the interpolated angle and score. When the maximum sits at
// either end of the series, or the three points are collinear, the raw
// sample is returned unchanged.
func (s *series) fitMax() (angle, score float64) {
	_, i := s.max()
	if i == 0 || i == len(s.scores)-1 {
		return s.angles[i], s.scores[i]
	}

	x0, x1, x2 := s.angles[i-1], s.angles[i], s.angles[i+1]
	y0, y1, y2 := s.scores[i-1], s.scores[i], s.scores[i+1]

	den := y0*(x1-x2) + y1*(x2-x0) + y2*(x0-x1)
	if den == 0 {
		return x1, y1
	}
	num := y0*(x1*x1-x2*x2) + y1*(x2*x2-x0*x0) + y2*(x0*x0-x1*x1)
	xv := 0.5 * num / den

	// Evaluate the Lagrange form at the vertex.
	yv := y0*(xv-x1)*(xv-x2)/((x0-x1)*(x0-x2)) +
		y1*(xv-x0)*(xv-x2)/((x1-x0)*(x1-x2)) +
		y2*(xv-x0)*(xv-x1)/((x2-x0)*(x2-x1))
	return xv, yv
}
