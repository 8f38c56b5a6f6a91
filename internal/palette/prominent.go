package palette

import (
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// ProminentExtractor finds dominant colors with prominentcolor's k-means++,
// which crops to the image center and masks plain backgrounds.
type ProminentExtractor struct {
	colorCount int
}

// NewProminentExtractor creates a prominentcolor-backed extractor.
func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{colorCount: ColorCount}
}

// Extract returns up to ColorCount colors ranked by pixel count.
func (e *ProminentExtractor) Extract(img image.Image) ([]mood.PaletteColor, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	items, err := prominentcolor.KmeansWithAll(
		e.colorCount,
		img,
		prominentcolor.ArgumentDefault,
		prominentcolor.DefaultSize,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil {
		return nil, fmt.Errorf("prominent colors: %w", err)
	}

	colors := make([]mood.PaletteColor, 0, len(items))
	for _, item := range items {
		colors = append(colors, mood.PaletteColor{
			Hex:        hexFromRGB(uint8(item.Color.R), uint8(item.Color.G), uint8(item.Color.B)),
			Population: float64(item.Cnt),
		})
	}

	return rank(colors), nil
}
