package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/justestif/go-spotify-mood-playlist/internal/config"
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
)

type analyzeCmd struct {
	cfg *config.Config

	colorInput

	JSON bool `short:"j" long:"json" description:"Print the result as JSON"`
}

// Execute derives and prints the mood of an image or palette.
func (c *analyzeCmd) Execute(_ []string) error {
	if err := c.cfg.Resolve(); err != nil {
		return err
	}

	req, err := c.request()
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(c.cfg)
	if err != nil {
		return err
	}

	result, err := playlist.New(analyzer).Derive(context.Background(), req)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*mood.Result
			Mood string `json:"mood"`
		}{result, mood.Name(result.Targets)})
	}

	printAnalysis(result)
	return nil
}
