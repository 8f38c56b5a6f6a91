// Package mood maps the colors of an image palette to Spotify audio targets.
//
// The mapping is a pure function of its input: a ranked palette is weighted,
// every color is decomposed into mood metrics, the metrics are merged into
// a single vector, and that vector is turned into bounded audio targets plus
// a short human-readable explanation.
package mood

import (
	"fmt"
	"slices"
)

// MaxColors is the number of palette entries considered by a mapping.
const MaxColors = 5

// PaletteColor is one entry of a ranked palette. Index 0 is the dominant color.
type PaletteColor struct {
	Hex        string  `json:"hex"`
	Population float64 `json:"population"`
}

// Averages holds the merged perceptual components of a palette.
type Averages struct {
	Warmth     float64 `json:"warmth"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// Analysis describes how a palette was interpreted.
type Analysis struct {
	Palette      []PaletteColor `json:"palette"`
	Averages     Averages       `json:"averages"`
	Explanations []string       `json:"explanations"`
}

// Result is the output of a palette mapping.
type Result struct {
	Targets  Targets  `json:"targets"`
	Analysis Analysis `json:"analysis"`
}

// Clone returns a copy of r that shares no slices with it.
func (r Result) Clone() Result {
	r.Analysis.Palette = slices.Clone(r.Analysis.Palette)
	r.Analysis.Explanations = slices.Clone(r.Analysis.Explanations)
	return r
}

// MapHexList maps a caller-supplied ordered list of hex colors.
// Empty strings are dropped, at most MaxColors entries are used and
// populations are synthesized by rank: the first color gets MaxColors,
// the next MaxColors-1, and so on.
func MapHexList(hexColors []string) (Result, error) {
	palette := make([]PaletteColor, 0, MaxColors)
	for _, hex := range hexColors {
		if hex == "" {
			continue
		}
		if len(palette) == MaxColors {
			break
		}
		palette = append(palette, PaletteColor{
			Hex:        hex,
			Population: float64(MaxColors - len(palette)),
		})
	}
	return mapPalette(palette)
}

// MapPalette maps a palette produced by an image extractor.
// Entries beyond MaxColors are ignored.
func MapPalette(palette []PaletteColor) (Result, error) {
	if len(palette) > MaxColors {
		palette = palette[:MaxColors]
	}
	// Copy so the returned analysis never aliases caller memory.
	return mapPalette(append([]PaletteColor(nil), palette...))
}

// mapPalette runs the full pipeline on an already truncated palette.
func mapPalette(palette []PaletteColor) (Result, error) {
	if palette == nil {
		palette = []PaletteColor{}
	}

	weighted := Weigh(palette)
	items := make([]WeightedMetrics, len(weighted))
	for i, wc := range weighted {
		m, err := ColorMetrics(wc.Hex)
		if err != nil {
			return Result{}, fmt.Errorf("palette color %d: %w", i, err)
		}
		items[i] = WeightedMetrics{Weight: wc.Weight, Metrics: m}
	}

	merged := Merge(items)

	// No colors means no signal: keep the floor targets and stay silent.
	explanations := []string{}
	if len(items) > 0 {
		explanations = Explain(merged)
	}

	return Result{
		Targets: TargetsFrom(merged),
		Analysis: Analysis{
			Palette: palette,
			Averages: Averages{
				Warmth:     merged.Warmth,
				Saturation: merged.Saturation,
				Lightness:  merged.Lightness,
			},
			Explanations: explanations,
		},
	}, nil
}
