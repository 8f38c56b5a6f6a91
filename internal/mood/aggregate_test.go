package mood

import "testing"

func uniform(v float64) Metrics {
	return Metrics{
		Warmth:           v,
		Saturation:       v,
		Lightness:        v,
		Energy:           v,
		Valence:          v,
		Danceability:     v,
		Acousticness:     v,
		Instrumentalness: v,
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		items []WeightedMetrics
		want  Metrics
	}{
		{
			name: "empty input",
			want: Metrics{},
		},
		{
			name: "weights above one are re-normalized",
			items: []WeightedMetrics{
				{Weight: 2, Metrics: uniform(1)},
				{Weight: 2, Metrics: uniform(1)},
			},
			want: uniform(1),
		},
		{
			name: "unequal unnormalized weights",
			items: []WeightedMetrics{
				{Weight: 3, Metrics: uniform(1)},
				{Weight: 1, Metrics: uniform(0)},
			},
			want: uniform(0.75),
		},
		{
			name: "zero total weight",
			items: []WeightedMetrics{
				{Weight: 0, Metrics: uniform(1)},
				{Weight: 0, Metrics: uniform(0.5)},
			},
			want: Metrics{},
		},
		{
			name: "weights summing to one",
			items: []WeightedMetrics{
				{Weight: 0.45, Metrics: uniform(1)},
				{Weight: 0.55, Metrics: uniform(0)},
			},
			want: uniform(0.45),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMetricsApprox(t, Merge(tt.items), tt.want)
		})
	}
}
