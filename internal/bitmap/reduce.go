package bitmap

import "fmt"

// ReduceRankCascade reduces src by a factor of two per cascade level,
// preserving skew-relevant structure better than plain subsampling. Each
// level examines 2x2 blocks and sets the output pixel when the block's
// foreground count reaches the level's rank (1..4). A rank of 0 ends the
// cascade; at most four levels are applied. With no effective levels the
// result is a copy of src.
//
// Low ranks are permissive (rank 1 keeps a pixel if any of the four is
// set) and preserve thin strokes; high ranks are erosive. The rank
// schedules used by the skew search follow the reference cascade choices
// for each power-of-two reduction.
func ReduceRankCascade(src *Bitmap, ranks ...int) (*Bitmap, error) {
	if src == nil {
		return nil, fmt.Errorf("reduce: nil bitmap")
	}
	if len(ranks) > 4 {
		return nil, fmt.Errorf("reduce: at most 4 cascade levels, got %d", len(ranks))
	}
	for i, r := range ranks {
		if r < 0 || r > 4 {
			return nil, fmt.Errorf("reduce: rank[%d] = %d outside [0,4]", i, r)
		}
	}

	out := src
	for _, r := range ranks {
		if r == 0 {
			break
		}
		if out.Width < 2 || out.Height < 2 {
			return nil, fmt.Errorf("reduce: bitmap %dx%d too small to halve",
				out.Width, out.Height)
		}
		out = reduceRank2(out, r)
	}
	if out == src {
		return src.Clone(), nil
	}
	return out, nil
}

// reduceRank2 performs one 2x reduction: each output pixel covers a 2x2
// source block and is set when at least rank of its pixels are set.
func reduceRank2(src *Bitmap, rank int) *Bitmap {
	w := src.Width / 2
	h := src.Height / 2
	dst := New(w, h)
	for y := 0; y < h; y++ {
		top := src.Pix[2*y*src.Width:]
		bot := src.Pix[(2*y+1)*src.Width:]
		drow := dst.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			n := int(top[2*x]) + int(top[2*x+1]) + int(bot[2*x]) + int(bot[2*x+1])
			if n >= rank {
				drow[x] = 1
			}
		}
	}
	return dst
}
