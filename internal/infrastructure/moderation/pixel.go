package moderation

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

const sampleSize = 64

// PixelDetector is the fallback detector: a crude local heuristic that
// downsamples the image and reports the share of skin-tone pixels as an
// "nsfw" probability. Far weaker than a real classifier, but it keeps the
// moderation gate alive when the scoring service is unreachable.
type PixelDetector struct{}

func NewPixelDetector() *PixelDetector { return &PixelDetector{} }

func (p *PixelDetector) Name() string { return "pixel_heuristic" }

func (p *PixelDetector) Classify(ctx context.Context, localPath string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", localPath, err)
	}

	small := imaging.Resize(img, sampleSize, sampleSize, imaging.Box)

	var skin, total float64
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isSkinTone(small.At(x, y).RGBA()) {
				skin++
			}
			total++
		}
	}
	if total == 0 {
		return map[string]float64{"nsfw": 0}, nil
	}

	return map[string]float64{"nsfw": skin / total}, nil
}

// isSkinTone uses the common RGB-space rule for skin pixels.
func isSkinTone(r, g, b, _ uint32) bool {
	R, G, B := float64(r>>8), float64(g>>8), float64(b>>8)

	if R <= 95 || G <= 40 || B <= 20 {
		return false
	}
	if R <= G || R <= B {
		return false
	}
	max, min := R, R
	for _, v := range []float64{G, B} {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}

	return max-min > 15 && R-G > 15
}
