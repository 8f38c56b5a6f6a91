package palette

import (
	"image"
	"image/color"
	"testing"
)

func TestProminentExtractor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	fillRect(img, image.Rect(0, 0, 200, 140), color.NRGBA{R: 198, G: 48, B: 59, A: 255})
	fillRect(img, image.Rect(0, 140, 200, 200), color.NRGBA{R: 24, G: 60, B: 242, A: 255})

	colors, err := NewProminentExtractor().Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(colors) == 0 || len(colors) > ColorCount {
		t.Fatalf("Extract() returned %d colors, want 1..%d", len(colors), ColorCount)
	}
	for i, c := range colors {
		if len(c.Hex) != 7 || c.Hex[0] != '#' {
			t.Errorf("colors[%d].Hex = %q, want #RRGGBB", i, c.Hex)
		}
		if i > 0 && c.Population > colors[i-1].Population {
			t.Errorf("colors not ranked: %v before %v", colors[i-1].Population, c.Population)
		}
	}
}
