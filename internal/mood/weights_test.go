package mood

import (
	"math"
	"testing"
)

func TestWeigh(t *testing.T) {
	tests := []struct {
		name    string
		palette []PaletteColor
		want    []float64
	}{
		{
			name:    "empty",
			palette: nil,
			want:    []float64{},
		},
		{
			name:    "single color gets everything",
			palette: []PaletteColor{{Hex: "#FF0000", Population: 3}},
			want:    []float64{1},
		},
		{
			name: "two colors",
			palette: []PaletteColor{
				{Hex: "#FFFFFF", Population: 1},
				{Hex: "#000000", Population: 1},
			},
			want: []float64{0.45, 0.55},
		},
		{
			name: "rest split by population",
			palette: []PaletteColor{
				{Hex: "#FF0000", Population: 100},
				{Hex: "#00FF00", Population: 3},
				{Hex: "#0000FF", Population: 1},
			},
			want: []float64{0.45, 0.4125, 0.1375},
		},
		{
			name: "zero rest population splits equally",
			palette: []PaletteColor{
				{Hex: "#FF0000", Population: 0},
				{Hex: "#00FF00", Population: 0},
				{Hex: "#0000FF", Population: 0},
				{Hex: "#FFFF00", Population: 0},
				{Hex: "#00FFFF", Population: 0},
			},
			want: []float64{0.45, 0.1375, 0.1375, 0.1375, 0.1375},
		},
		{
			name: "dominant population is ignored",
			palette: []PaletteColor{
				{Hex: "#FF0000", Population: 0},
				{Hex: "#00FF00", Population: 9},
			},
			want: []float64{0.45, 0.55},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weigh(tt.palette)
			if got == nil {
				t.Fatal("Weigh() returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Weigh() returned %d colors, want %d", len(got), len(tt.want))
			}

			var sum float64
			for i, wc := range got {
				if !approxEqual(wc.Weight, tt.want[i]) {
					t.Errorf("weight[%d] = %v, want %v", i, wc.Weight, tt.want[i])
				}
				if wc.Hex != tt.palette[i].Hex {
					t.Errorf("color[%d] = %q, want %q", i, wc.Hex, tt.palette[i].Hex)
				}
				sum += wc.Weight
			}

			if len(got) > 0 && math.Abs(sum-1) > tolerance {
				t.Errorf("weights sum to %v, want 1", sum)
			}
		})
	}
}

func TestWeighNonNegative(t *testing.T) {
	palette := []PaletteColor{
		{Hex: "#111111", Population: 5},
		{Hex: "#222222", Population: 0},
		{Hex: "#333333", Population: 2},
	}
	for i, wc := range Weigh(palette) {
		if wc.Weight < 0 {
			t.Errorf("weight[%d] = %v, want >= 0", i, wc.Weight)
		}
	}
}
