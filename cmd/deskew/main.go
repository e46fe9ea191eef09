package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/disintegration/imaging"

	"github.com/scandoc/deskew/internal/bitmap"
	"github.com/scandoc/deskew/internal/config"
	"github.com/scandoc/deskew/internal/ocr"
	"github.com/scandoc/deskew/internal/plot"
	"github.com/scandoc/deskew/internal/skew"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		inPath      = flag.String("in", "", "input image (PNG, JPEG or GIF)")
		outPath     = flag.String("out", "", "output image; omit to only report the angle")
		threshold   = flag.Int("threshold", 0, "binarization threshold 1-255; 0 picks one automatically")
		reduction   = flag.Int("reduction", skew.DefaultSearchReduction, "search reduction factor (1, 2 or 4)")
		configPath  = flag.String("config", "", "YAML file with search parameters")
		plotSweep   = flag.String("plot-sweep", "", "write the sweep score curve to this PNG")
		plotSearch  = flag.String("plot-search", "", "write the refinement scores to this PNG")
		verify      = flag.Bool("verify", false, "run OCR before and after to compare recognizability")
		lang        = flag.String("lang", "eng", "Tesseract language for -verify")
		verbose     = flag.Bool("verbose", false, "log search details")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	// The reduction flag only overrides a config file when given
	// explicitly; its default must not clobber the file's value.
	reductionSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "reduction" {
			reductionSet = true
		}
	})

	if *showVersion {
		fmt.Printf("deskew %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	if err := run(*inPath, *outPath, *threshold, *reduction, reductionSet,
		*configPath, *plotSweep, *plotSearch, *verify, *lang, *verbose); err != nil {
		log.Fatalf("deskew: %v", err)
	}
}

func run(inPath, outPath string, threshold, reduction int, reductionSet bool,
	configPath, plotSweep, plotSearch string, verify bool, lang string, verbose bool) error {

	img, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}

	level := uint8(threshold)
	if threshold == 0 {
		level = bitmap.OtsuThreshold(img)
		if verbose {
			log.Printf("auto threshold: %d", level)
		}
	}
	bm := bitmap.FromImage(img, level)

	cfg := skew.DefaultConfig()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	if reductionSet {
		cfg.SearchReduction = reduction
	}

	var sweepSamples, searchSamples []skew.Sample
	if plotSweep != "" || plotSearch != "" || verbose {
		cfg.OnSample = func(phase skew.Phase, angle, score float64) {
			if verbose {
				log.Printf("%s: score(%7.2f) = %.0f", phase, angle, score)
			}
			s := skew.Sample{Angle: angle, Score: score}
			if phase == skew.PhaseSweep {
				sweepSamples = append(sweepSamples, s)
			} else {
				searchSamples = append(searchSamples, s)
			}
		}
	}

	est, err := skew.SweepAndSearch(bm, cfg)
	switch {
	case err == nil:
		fmt.Printf("angle: %.3f degrees, confidence: %.2f\n", est.Angle, est.Confidence)
	case errors.Is(err, skew.ErrNoForeground), errors.Is(err, skew.ErrSweepEdge):
		log.Printf("warning: %v; leaving page unrotated", err)
		est = skew.Estimate{}
	default:
		return err
	}

	if plotSweep != "" {
		if err := writePlot(plotSweep, sweepSamples, true); err != nil {
			return err
		}
	}
	if plotSearch != "" {
		if err := writePlot(plotSearch, searchSamples, false); err != nil {
			return err
		}
	}

	if outPath == "" {
		return nil
	}

	out := bm
	if math.Abs(est.Angle) >= skew.MinDeskewAngle && est.Confidence >= skew.MinConfidence {
		rotated, err := bitmap.Rotate(bm, est.Angle*math.Pi/180)
		if err != nil {
			log.Printf("warning: rotation failed (%v); saving unrotated page", err)
		} else {
			out = rotated
		}
	} else if verbose {
		log.Printf("angle below %.1f degrees or confidence below %.1f; saving unrotated page",
			skew.MinDeskewAngle, skew.MinConfidence)
	}

	if err := imaging.Save(out.ToImage(), outPath); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}

	if verify {
		if err := verifyPages(inPath, outPath, lang); err != nil {
			return err
		}
	}
	return nil
}

func writePlot(path string, samples []skew.Sample, connect bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := plot.RenderScores(f, samples, connect); err != nil {
		return fmt.Errorf("plotting %s: %w", path, err)
	}
	return nil
}

func verifyPages(inPath, outPath, lang string) error {
	before, err := ocr.Verify(inPath, lang)
	if err != nil {
		return fmt.Errorf("OCR on input: %w", err)
	}
	after, err := ocr.Verify(outPath, lang)
	if err != nil {
		return fmt.Errorf("OCR on output: %w", err)
	}
	fmt.Printf("ocr before: %d words, mean confidence %.2f\n", before.Words, before.MeanConfidence)
	fmt.Printf("ocr after:  %d words, mean confidence %.2f\n", after.Words, after.MeanConfidence)
	return nil
}
