// Package bitmap provides the bilevel raster primitives used by the skew
// search: cloning, blank templates, corner shears, shear-based rotation,
// rank-filtered 2x reduction cascades, and per-row pixel counts.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Angles passed to the
// shear and rotation operations are in radians, clockwise positive in
// this raster frame.
//
// # Fill Policy
//
// Shears and rotations displace pixels within a fixed-size frame. Pixels
// brought in from outside the frame are always background (white paper),
// matching the assumption that a scanned document sits on a white field.
//
// # Ownership
//
// Operations never mutate their source bitmap. Functions returning a
// *Bitmap allocate fresh storage, including the degenerate cases where no
// transformation was required, so callers may freely mutate any result.
package bitmap
