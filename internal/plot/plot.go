// Package plot renders diagnostic score-versus-angle charts for the skew
// search. It is never called from the measurement path and has no effect
// on returned results.
package plot

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/scandoc/deskew/internal/skew"
)

// Chart dimensions in millimeters and the margin around the data area.
const (
	chartWidth  = 160.0
	chartHeight = 100.0
	margin      = 12.0
)

// RenderScores draws the given samples as a PNG chart, angle on the
// horizontal axis and score on the vertical. When connect is true the
// samples are joined in order, which reads well for the monotone sweep
// phase; refinement samples are not ordered by angle and should be
// rendered as points only.
func RenderScores(w io.Writer, samples []skew.Sample, connect bool) error {
	if len(samples) == 0 {
		return fmt.Errorf("plot: no samples")
	}

	minA, maxA := samples[0].Angle, samples[0].Angle
	minS, maxS := samples[0].Score, samples[0].Score
	for _, s := range samples[1:] {
		minA = min(minA, s.Angle)
		maxA = max(maxA, s.Angle)
		minS = min(minS, s.Score)
		maxS = max(maxS, s.Score)
	}
	if maxA == minA {
		maxA = minA + 1
	}
	if maxS == minS {
		maxS = minS + 1
	}

	toX := func(a float64) float64 {
		return margin + (a-minA)/(maxA-minA)*(chartWidth-2*margin)
	}
	toY := func(s float64) float64 {
		return margin + (s-minS)/(maxS-minS)*(chartHeight-2*margin)
	}

	rast := rasterizer.New(chartWidth, chartHeight, canvas.DPI(150), canvas.DefaultColorSpace)

	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	rast.RenderPath(canvas.Rectangle(chartWidth, chartHeight), bgStyle, canvas.Identity)

	// Frame around the data area.
	frameStyle := canvas.DefaultStyle
	frameStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	frameStyle.Stroke = canvas.Paint{Color: canvas.Gray}
	frameStyle.StrokeWidth = 0.3
	frame := canvas.Rectangle(chartWidth-2*margin, chartHeight-2*margin)
	rast.RenderPath(frame, frameStyle, canvas.Identity.Translate(margin, margin))

	// Zero-angle reference line when it falls inside the range.
	if minA < 0 && maxA > 0 {
		zeroStyle := frameStyle
		zeroStyle.Dashes = []float64{1.0, 1.0}
		zp := &canvas.Path{}
		zp.MoveTo(toX(0), margin)
		zp.LineTo(toX(0), chartHeight-margin)
		rast.RenderPath(zp, zeroStyle, canvas.Identity)
	}

	lineColor := chartColor(210)
	pointColor := chartColor(25)

	if connect {
		lineStyle := canvas.DefaultStyle
		lineStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		lineStyle.Stroke = canvas.Paint{Color: lineColor}
		lineStyle.StrokeWidth = 0.5
		lp := &canvas.Path{}
		for i, s := range samples {
			if i == 0 {
				lp.MoveTo(toX(s.Angle), toY(s.Score))
			} else {
				lp.LineTo(toX(s.Angle), toY(s.Score))
			}
		}
		rast.RenderPath(lp, lineStyle, canvas.Identity)
	}

	pointStyle := canvas.DefaultStyle
	pointStyle.Fill = canvas.Paint{Color: pointColor}
	pointStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	dot := canvas.Circle(0.7)
	for _, s := range samples {
		rast.RenderPath(dot, pointStyle, canvas.Identity.Translate(toX(s.Angle), toY(s.Score)))
	}

	return png.Encode(w, rast)
}

// chartColor picks a saturated, readable series color at the given hue.
func chartColor(hue float64) color.RGBA {
	r, g, b := colorful.Hsv(hue, 0.75, 0.75).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
