package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/justestif/go-spotify-mood-playlist/internal/config"
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/palette"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
)

// colorInput is shared by the commands that read an image or colors.
type colorInput struct {
	Colors []string `short:"C" long:"color" description:"Hex color, repeat for a palette (dominant first)"`

	Args struct {
		Image string `positional-arg-name:"IMAGE" description:"Image file or http(s) URL"`
	} `positional-args:"true"`
}

// request fills the image or palette fields of a generate request.
func (in colorInput) request() (playlist.GenerateRequest, error) {
	var req playlist.GenerateRequest

	switch image := in.Args.Image; {
	case image == "" && len(in.Colors) == 0:
		return req, errors.New("an IMAGE or at least one --color is required")
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		req.ImageURL = image
	case image != "":
		data, err := os.ReadFile(image)
		if err != nil {
			return req, fmt.Errorf("reading image: %w", err)
		}
		if len(data) > palette.MaxImageBytes {
			return req, palette.ErrImageTooLarge
		}
		req.ImageBase64 = "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
	}

	req.PaletteHex = in.Colors
	return req, nil
}

// newAnalyzer builds the palette analyzer the config asks for.
func newAnalyzer(cfg *config.Config) (*palette.Analyzer, error) {
	extractor, err := palette.NewExtractor(cfg.Palette.Strategy)
	if err != nil {
		return nil, err
	}
	return palette.NewAnalyzer(extractor, palette.WithCacheSize(cfg.AnalysisCacheSize())), nil
}

// printAnalysis writes a derived mood in the terminal's plain format.
func printAnalysis(result *mood.Result) {
	t := result.Targets

	fmt.Printf("Mood: %s\n", mood.Name(t))
	fmt.Printf("      %s\n\n", mood.Describe(t))

	fmt.Println("Palette:")
	for _, c := range result.Analysis.Palette {
		fmt.Printf("  %s  (population %.0f)\n", c.Hex, c.Population)
	}

	a := result.Analysis.Averages
	fmt.Printf("\nWarmth %.2f  Saturation %.2f  Lightness %.2f\n\n", a.Warmth, a.Saturation, a.Lightness)

	fmt.Println("Targets:")
	fmt.Printf("  energy            %.2f\n", t.Energy)
	fmt.Printf("  valence           %.2f\n", t.Valence)
	fmt.Printf("  danceability      %.2f\n", t.Danceability)
	fmt.Printf("  acousticness      %.2f\n", t.Acousticness)
	fmt.Printf("  instrumentalness  %.2f\n", t.Instrumentalness)
	fmt.Printf("  tempo             %.0f BPM\n", t.Tempo)
	fmt.Printf("  loudness          %.1f dB\n", t.Loudness)

	if len(result.Analysis.Explanations) > 0 {
		fmt.Println()
		for _, e := range result.Analysis.Explanations {
			fmt.Printf("- %s\n", e)
		}
	}
}
