// Package skew estimates and corrects the rotational skew of scanned
// bilevel document pages.
//
// Skew is measured from pixel profiles: shearing the page by a trial
// angle lets per-row foreground counts stand in for counts along lines
// at that angle, and the sum of squared differences between adjacent row
// counts (DifferentialSquareSum) peaks when text baselines align with
// the raster. The search for the peak runs in two phases: a coarse
// uniform sweep over a heavily reduced image, then an interval-halving
// refinement at higher resolution that converges to the requested
// angular tolerance with a fixed number of evaluations.
//
// # Entry Points
//
// Deskew and FindAndDeskew are the high-level interfaces: measure, gate
// on angle magnitude and confidence, and rotate only when both pass.
// Find returns just the measurement with default parameters. Sweep and
// SweepAndSearch expose the full parameter set for callers tuning the
// search window.
//
// # Confidence
//
// Confidence is the ratio of the maximum to minimum score seen during
// refinement, forced to zero when the minimum is below a threshold
// scaled by the image dimensions (near-blank or near-solid input), when
// the peak score is too small in absolute terms, or when the converged
// angle lies within one sweep step of the sweep boundary. Callers must
// treat a zero-confidence angle as undetermined.
//
// # Angle Convention
//
// All angles are in degrees and give the rotation required to deskew:
// clockwise positive, the negative of the page's skew.
//
// Every call is a pure function of its inputs. Working images are
// allocated per call and the caller's bitmap is never mutated.
package skew
