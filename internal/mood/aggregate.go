package mood

// WeightedMetrics pairs a color's metrics with its influence weight.
type WeightedMetrics struct {
	Weight  float64
	Metrics Metrics
}

// Merge combines per-color metrics into a single mood vector.
// Weights are re-normalized by their total so the result stays in [0,1]
// even if they do not sum to exactly 1. An empty input yields the zero vector.
func Merge(items []WeightedMetrics) Metrics {
	var total float64
	for _, item := range items {
		total += item.Weight
	}
	if total == 0 {
		total = 1
	}

	var merged Metrics
	for _, item := range items {
		f := item.Weight / total
		m := item.Metrics
		merged.Warmth += m.Warmth * f
		merged.Saturation += m.Saturation * f
		merged.Lightness += m.Lightness * f
		merged.Energy += m.Energy * f
		merged.Valence += m.Valence * f
		merged.Danceability += m.Danceability * f
		merged.Acousticness += m.Acousticness * f
		merged.Instrumentalness += m.Instrumentalness * f
	}

	return merged
}
