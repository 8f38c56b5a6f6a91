// Package palette extracts ranked color palettes from images and feeds them
// into the mood mapping.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"slices"

	_ "github.com/gen2brain/avif" // register AVIF decoder
	_ "golang.org/x/image/webp"   // register WebP decoder

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// ColorCount is the maximum number of colors an extractor returns.
const ColorCount = mood.MaxColors

// Strategy names accepted by NewExtractor.
const (
	StrategyKMeans    = "kmeans"
	StrategyProminent = "prominent"
)

var (
	// ErrEmptyImage is returned when an image has no usable pixels.
	ErrEmptyImage = errors.New("image has no usable pixels")

	// ErrUnknownStrategy is returned for an unsupported extraction strategy.
	ErrUnknownStrategy = errors.New("unknown palette strategy")
)

// Extractor turns a decoded image into a palette ranked by population.
type Extractor interface {
	Extract(img image.Image) ([]mood.PaletteColor, error)
}

// NewExtractor returns the extractor registered under the given strategy.
// An empty strategy selects k-means.
func NewExtractor(strategy string) (Extractor, error) {
	switch strategy {
	case "", StrategyKMeans:
		return NewKMeansExtractor(), nil
	case StrategyProminent:
		return NewProminentExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Decode decodes raw image bytes in any registered format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// rank merges duplicate hex values, sorts by population (largest first)
// and keeps the top ColorCount entries.
func rank(colors []mood.PaletteColor) []mood.PaletteColor {
	merged := make([]mood.PaletteColor, 0, len(colors))
	index := make(map[string]int, len(colors))
	for _, c := range colors {
		if c.Population <= 0 {
			continue
		}
		if i, ok := index[c.Hex]; ok {
			merged[i].Population += c.Population
			continue
		}
		index[c.Hex] = len(merged)
		merged = append(merged, c)
	}

	slices.SortStableFunc(merged, func(a, b mood.PaletteColor) int {
		switch {
		case a.Population > b.Population:
			return -1
		case a.Population < b.Population:
			return 1
		default:
			return 0
		}
	})

	if len(merged) > ColorCount {
		merged = merged[:ColorCount]
	}
	return merged
}

func hexFromRGB(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
