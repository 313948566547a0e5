package moderation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrNoDetector marks the explicit configuration state "moderation wanted
// but no classifier can produce a verdict". The caller decides what that
// means; the adapter never declares content safe on its own.
var ErrNoDetector = errors.New("no content detector available")

// Verdict is the transient outcome of one classification call. It is
// produced, consumed and dropped; never persisted.
type Verdict struct {
	Detector string
	Blocked  bool
	Scores   map[string]float64
}

// Detector is one classifier behind the adapter. Implementations return a
// map of named category probabilities; boolean-only backends report a single
// category with probability 1 or 0.
type Detector interface {
	Name() string
	Classify(ctx context.Context, localPath string) (map[string]float64, error)
}

// Categories counted as explicit when aggregating scores.
var explicitCategories = map[string]struct{}{
	"porn":     {},
	"sexy":     {},
	"nsfw":     {},
	"explicit": {},
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
}

// Adapter tries its detectors in fixed priority order and turns the first
// successful score map into a verdict.
type Adapter struct {
	detectors []Detector
	required  bool
	threshold float64
	log       *zap.Logger
}

func NewAdapter(detectors []Detector, required bool, threshold float64, logger *zap.Logger) *Adapter {
	return &Adapter{
		detectors: detectors,
		required:  required,
		threshold: threshold,
		log:       logger,
	}
}

func (a *Adapter) Classify(ctx context.Context, localPath string) (Verdict, error) {
	// Unrecognized extensions never reach a classifier. Video screening is
	// a separate path (frame sampling) not wired here.
	ext := strings.ToLower(filepath.Ext(localPath))
	if _, ok := imageExtensions[ext]; !ok {
		return Verdict{}, nil
	}

	var lastErr error
	for _, d := range a.detectors {
		scores, err := d.Classify(ctx, localPath)
		if err != nil {
			a.log.Info("detector failed, trying next",
				zap.String("detector", d.Name()), zap.Error(err))
			lastErr = err
			continue
		}

		return Verdict{
			Detector: d.Name(),
			Blocked:  aggregate(scores) >= a.threshold,
			Scores:   scores,
		}, nil
	}

	if lastErr != nil {
		return Verdict{}, fmt.Errorf("all detectors failed: %w", lastErr)
	}
	if a.required {
		return Verdict{}, ErrNoDetector
	}

	return Verdict{}, nil
}

// aggregate sums the probabilities of recognized explicit categories.
func aggregate(scores map[string]float64) float64 {
	var total float64
	for name, p := range scores {
		if _, ok := explicitCategories[strings.ToLower(name)]; ok {
			total += p
		}
	}

	return total
}
