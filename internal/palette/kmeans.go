package palette

import (
	"fmt"
	"image"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

const (
	maxSamplesPerAxis = 96
	alphaThreshold    = 0x1000 // out of 0xffff
)

// pixelObservation wraps an RGB sample to implement clusters.Observation.
type pixelObservation struct {
	coords clusters.Coordinates
}

func (o pixelObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o pixelObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// KMeansExtractor clusters sampled pixels in RGB space.
type KMeansExtractor struct {
	colorCount int
}

// NewKMeansExtractor creates a k-means extractor returning up to ColorCount colors.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{colorCount: ColorCount}
}

// Extract samples the image on a grid and groups the samples with k-means.
// Each cluster becomes one palette color with its size as population.
func (e *KMeansExtractor) Extract(img image.Image) ([]mood.PaletteColor, error) {
	obs := samplePixels(img)
	if len(obs) == 0 {
		return nil, ErrEmptyImage
	}

	k := min(e.colorCount, len(obs))

	km := kmeans.New()
	result, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("k-means partition: %w", err)
	}

	colors := make([]mood.PaletteColor, 0, len(result))
	for _, cluster := range result {
		if len(cluster.Observations) == 0 {
			continue
		}
		colors = append(colors, mood.PaletteColor{
			Hex:        hexFromCoordinates(cluster.Center),
			Population: float64(len(cluster.Observations)),
		})
	}

	return rank(colors), nil
}

// samplePixels reads at most maxSamplesPerAxis² opaque pixels as RGB
// coordinates in [0,1].
func samplePixels(img image.Image) clusters.Observations {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil
	}

	stepX := max(1, bounds.Dx()/maxSamplesPerAxis)
	stepY := max(1, bounds.Dy()/maxSamplesPerAxis)

	var obs clusters.Observations
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, a := img.At(x, y).RGBA()
			if a < alphaThreshold {
				continue
			}
			// Undo alpha premultiplication.
			obs = append(obs, pixelObservation{coords: clusters.Coordinates{
				float64(r) / float64(a),
				float64(g) / float64(a),
				float64(b) / float64(a),
			}})
		}
	}
	return obs
}

func hexFromCoordinates(c clusters.Coordinates) string {
	channel := func(i int) uint8 {
		if i >= len(c) {
			return 0
		}
		return uint8(math.Round(math.Max(0, math.Min(1, c[i])) * 255))
	}
	return hexFromRGB(channel(0), channel(1), channel(2))
}
