package mood

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a palette color is not a CSS hex color.
var ErrInvalidHex = errors.New("invalid hex color")

// Metrics is the mood vector of one color, or of a merged palette.
// Every field is in [0,1].
type Metrics struct {
	Warmth           float64 `json:"warmth"`
	Saturation       float64 `json:"saturation"`
	Lightness        float64 `json:"lightness"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

// ParseHex decodes "#rrggbb", "#rgb" or the same without the leading '#'.
func ParseHex(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return c, nil
}

// ColorMetrics decomposes a hex color into its mood metrics.
func ColorMetrics(hex string) (Metrics, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return Metrics{}, err
	}
	h, s, l := c.Hsl()
	return metricsFromHSL(h, s, l), nil
}

// metricsFromHSL applies the fixed linear model to a hue/saturation/lightness
// triple. NaN components (gray has no hue) count as 0.
func metricsFromHSL(hue, sat, light float64) Metrics {
	saturation := clamp01(zeroNaN(sat))
	lightness := clamp01(zeroNaN(light))
	w := Warmth(hue)

	return Metrics{
		Warmth:       w,
		Saturation:   saturation,
		Lightness:    lightness,
		Energy:       clamp01(0.15 + 0.55*w + 0.20*saturation + 0.10*lightness),
		Valence:      clamp01(0.10 + 0.60*w + 0.20*saturation + 0.10*lightness),
		Danceability: clamp01(0.15 + 0.75*saturation + 0.10*lightness),
		Acousticness: clamp01(0.10 + 0.60*(1-saturation) + 0.30*(1-lightness)),
		Instrumentalness: clamp01(
			0.05 + 0.50*(1-w) + 0.25*(1-saturation) + 0.20*(1-lightness),
		),
	}
}

// Warmth maps a hue in degrees onto [0,1] with a cosine curve peaking at
// 30° (orange) and bottoming out at 210° (cyan-blue).
func Warmth(hue float64) float64 {
	h := normalizeHue(hue)
	radians := (h - 30) * math.Pi / 180
	return clamp01((math.Cos(radians) + 1) / 2)
}

// normalizeHue wraps any hue into [0,360).
func normalizeHue(hue float64) float64 {
	if math.IsNaN(hue) || math.IsInf(hue, 0) {
		return 0
	}
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
