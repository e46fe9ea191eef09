package bitmap

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// FromImage binarizes an image into a bitmap. Pixels whose gray value is
// below the threshold become foreground (ink); the rest become
// background. Use OtsuThreshold to pick a threshold automatically.
func FromImage(img image.Image, threshold uint8) *Bitmap {
	th := segment.Threshold(img, threshold)
	bounds := th.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	bm := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if th.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y == 0 {
				bm.Pix[y*w+x] = 1
			}
		}
	}
	return bm
}

// OtsuThreshold computes a binarization threshold from the grayscale
// histogram by maximizing the between-class variance. On a page with a
// bimodal ink/paper distribution this lands between the two modes. The
// returned level is suitable for FromImage: every pixel in the dark
// class is strictly below it.
func OtsuThreshold(img image.Image) uint8 {
	gray := imaging.Grayscale(img)
	var hist [256]int
	total := 0
	for i := 0; i < len(gray.Pix); i += 4 {
		hist[gray.Pix[i]]++
		total++
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for v, n := range hist {
		sum += float64(v) * float64(n)
	}

	var sumBack, weightBack float64
	best := 0
	bestVar := -1.0
	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		diff := meanBack - meanFore
		between := weightBack * weightFore * diff * diff
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	// best is the top gray value of the dark class; move one level up so
	// FromImage's strict comparison keeps that value as ink.
	if best < 255 {
		best++
	}
	return uint8(best)
}

// ToImage renders the bitmap as a grayscale image with ink black and
// background white.
func (b *Bitmap) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for i, p := range b.Pix {
		if p == 0 {
			img.Pix[i] = 255
		}
	}
	return img
}
