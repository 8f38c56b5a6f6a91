package palette

import (
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// countingExtractor records calls and returns a fixed palette.
type countingExtractor struct {
	calls   atomic.Int32
	palette []mood.PaletteColor
}

func (e *countingExtractor) Extract(image.Image) ([]mood.PaletteColor, error) {
	e.calls.Add(1)
	return e.palette, nil
}

func TestAnalyzerAnalyzeBytes(t *testing.T) {
	ex := &countingExtractor{palette: []mood.PaletteColor{{Hex: "#FF4500", Population: 10}}}
	analyzer := NewAnalyzer(ex)

	data := encodePNG(t, solidImage(4, 4, color.NRGBA{R: 255, G: 69, A: 255}))

	first, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}
	second, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}

	if calls := ex.calls.Load(); calls != 1 {
		t.Errorf("extractor called %d times, want 1", calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from first result")
	}

	want, err := mood.MapPalette(ex.palette)
	if err != nil {
		t.Fatalf("MapPalette() error = %v", err)
	}
	if first.Targets != want.Targets {
		t.Errorf("Targets = %+v, want %+v", first.Targets, want.Targets)
	}
}

func TestAnalyzerCacheIsolatesCallers(t *testing.T) {
	ex := &countingExtractor{palette: []mood.PaletteColor{{Hex: "#FFFFFF", Population: 10}}}
	analyzer := NewAnalyzer(ex)
	data := encodePNG(t, solidImage(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))

	first, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}
	if len(first.Analysis.Palette) == 0 || len(first.Analysis.Explanations) == 0 {
		t.Fatalf("expected palette and explanations, got %+v", first.Analysis)
	}
	want := first.Clone()

	first.Analysis.Palette[0].Hex = "#000000"
	first.Analysis.Explanations[0] = "changed"

	second, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}
	second.Analysis.Explanations[0] = "changed again"

	third, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}
	if !reflect.DeepEqual(third, want) {
		t.Errorf("cached result was modified through a returned copy:\n got %+v\nwant %+v", third, want)
	}
	if calls := ex.calls.Load(); calls != 1 {
		t.Errorf("extractor called %d times, want 1", calls)
	}
}

func TestAnalyzerCacheEviction(t *testing.T) {
	ex := &countingExtractor{palette: []mood.PaletteColor{{Hex: "#1E3A5F", Population: 1}}}
	analyzer := NewAnalyzer(ex, WithCacheSize(1))

	a := encodePNG(t, solidImage(2, 2, color.NRGBA{R: 1, A: 255}))
	b := encodePNG(t, solidImage(2, 2, color.NRGBA{G: 1, A: 255}))

	for _, data := range [][]byte{a, b, a} {
		if _, err := analyzer.AnalyzeBytes(data); err != nil {
			t.Fatalf("AnalyzeBytes() error = %v", err)
		}
	}

	if calls := ex.calls.Load(); calls != 3 {
		t.Errorf("extractor called %d times, want 3", calls)
	}
	if n := analyzer.cached(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
}

func TestAnalyzerCacheDisabled(t *testing.T) {
	ex := &countingExtractor{palette: []mood.PaletteColor{{Hex: "#FFFFFF", Population: 1}}}
	analyzer := NewAnalyzer(ex, WithCacheSize(0))

	data := encodePNG(t, solidImage(2, 2, color.NRGBA{B: 9, A: 255}))
	for i := 0; i < 2; i++ {
		if _, err := analyzer.AnalyzeBytes(data); err != nil {
			t.Fatalf("AnalyzeBytes() error = %v", err)
		}
	}

	if calls := ex.calls.Load(); calls != 2 {
		t.Errorf("extractor called %d times, want 2", calls)
	}
}

func TestAnalyzerAnalyzeBase64Source(t *testing.T) {
	analyzer := NewAnalyzer(NewKMeansExtractor())
	data := encodePNG(t, solidImage(16, 16, color.NRGBA{R: 255, G: 69, B: 0, A: 255}))

	result, err := analyzer.Analyze(context.Background(), Source{
		Base64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Analysis.Palette) != 1 || result.Analysis.Palette[0].Hex != "#FF4500" {
		t.Errorf("Palette = %+v, want single #FF4500", result.Analysis.Palette)
	}
	if result.Targets.Energy <= 0.6 {
		t.Errorf("Energy = %v, want > 0.6", result.Targets.Energy)
	}
}

func TestAnalyzerEmptySource(t *testing.T) {
	ex := &countingExtractor{}
	analyzer := NewAnalyzer(ex)

	result, err := analyzer.Analyze(context.Background(), Source{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if mood.HasSignal(result.Targets) {
		t.Errorf("Targets = %+v, want no signal", result.Targets)
	}
	if ex.calls.Load() != 0 {
		t.Error("extractor should not run for an empty source")
	}
}
