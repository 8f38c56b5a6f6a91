// Command mood-playlist builds Spotify playlists whose mood follows the colors
// of an image. It runs as a web application or from the terminal.
package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/justestif/go-spotify-mood-playlist/internal/config"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var cfg config.Config

	parser := flags.NewParser(&cfg, flags.Default)
	parser.ShortDescription = "Mood playlists from image colors"

	mustAdd(parser, "serve", "Run the web application", &serveCmd{cfg: &cfg})
	mustAdd(parser, "analyze", "Print the mood of an image or a list of colors", &analyzeCmd{cfg: &cfg})
	mustAdd(parser, "generate", "Create a playlist from an image or a list of colors", &generateCmd{cfg: &cfg})
	mustAdd(parser, "version", "Show version information", &versionCmd{})

	if _, err := parser.Parse(); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func mustAdd(parser *flags.Parser, name, description string, cmd any) {
	if _, err := parser.AddCommand(name, description, description, cmd); err != nil {
		panic(err)
	}
}
