// Package ocr provides an optional Tesseract-based spot check of a
// corrected page. Running recognition before and after deskew shows
// whether the correction actually improved recognizability; it is not
// part of the measurement contract and requires Tesseract installed on
// the host.
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// VerifyResult summarizes one recognition pass over a page.
type VerifyResult struct {
	// Words is the number of non-empty words Tesseract found.
	Words int `json:"words"`

	// MeanConfidence is the average word confidence (0.0 to 1.0).
	MeanConfidence float64 `json:"mean_confidence"`
}

// Verify runs Tesseract over the image at the given path and reports the
// word count and mean word confidence. language is a Tesseract language
// code such as "eng".
func Verify(imagePath, language string) (*VerifyResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	var sum float64
	words := 0
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		sum += float64(box.Confidence) / 100.0
		words++
	}

	res := &VerifyResult{Words: words}
	if words > 0 {
		res.MeanConfidence = sum / float64(words)
	}
	return res, nil
}
