package plot

import (
	"bytes"
	"testing"

	"github.com/scandoc/deskew/internal/skew"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sweepSamples() []skew.Sample {
	samples := make([]skew.Sample, 0, 11)
	for a := -5.0; a <= 5.0; a++ {
		samples = append(samples, skew.Sample{Angle: a, Score: 1000 - a*a*30})
	}
	return samples
}

func TestRenderScoresPNG(t *testing.T) {
	for _, connect := range []bool{true, false} {
		var buf bytes.Buffer
		if err := RenderScores(&buf, sweepSamples(), connect); err != nil {
			t.Fatalf("RenderScores(connect=%v): %v", connect, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("connect=%v: output is not a PNG", connect)
		}
	}
}

func TestRenderScoresSinglePoint(t *testing.T) {
	// Degenerate ranges must not divide by zero.
	var buf bytes.Buffer
	err := RenderScores(&buf, []skew.Sample{{Angle: 1, Score: 42}}, false)
	if err != nil {
		t.Fatalf("RenderScores: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderScoresEmpty(t *testing.T) {
	if err := RenderScores(&bytes.Buffer{}, nil, false); err == nil {
		t.Error("accepted an empty sample set")
	}
}
