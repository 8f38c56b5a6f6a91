package mood

// DominantWeight is the fixed share given to the first palette color when
// the palette has more than one entry.
const DominantWeight = 0.45

// WeightedColor is a palette color with its relative influence.
type WeightedColor struct {
	PaletteColor
	Weight float64
}

// Weigh assigns influence weights to a ranked palette.
//
// A single color gets the full weight. Otherwise the dominant color gets
// DominantWeight and the rest is split by population, or equally when the
// remaining colors have no population at all.
func Weigh(palette []PaletteColor) []WeightedColor {
	switch len(palette) {
	case 0:
		return []WeightedColor{}
	case 1:
		return []WeightedColor{{PaletteColor: palette[0], Weight: 1}}
	}

	rest := palette[1:]
	var restTotal float64
	for _, c := range rest {
		restTotal += c.Population
	}

	remaining := 1 - DominantWeight
	weighted := make([]WeightedColor, 0, len(palette))
	weighted = append(weighted, WeightedColor{PaletteColor: palette[0], Weight: DominantWeight})

	for _, c := range rest {
		weight := remaining / float64(len(rest))
		if restTotal > 0 {
			weight = c.Population / restTotal * remaining
		}
		weighted = append(weighted, WeightedColor{PaletteColor: c, Weight: weight})
	}

	return weighted
}
