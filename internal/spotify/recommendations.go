package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

const (
	// MaxSeeds is the total number of seeds Spotify accepts per request.
	MaxSeeds = 5

	// DefaultRecommendationLimit is the number of tracks requested by default.
	DefaultRecommendationLimit = 50

	maxRecommendationLimit = 100
)

// DefaultSeedGenres are used when a request carries no seed at all.
var DefaultSeedGenres = []string{"pop", "rock", "indie", "electronic", "hip-hop"}

// RecommendRequest describes a recommendation query.
type RecommendRequest struct {
	SeedArtists []string
	SeedTracks  []string
	SeedGenres  []string
	Targets     Targets
	Limit       int
}

// Recommend fetches tracks close to the requested targets.
// Seeds are taken in artist, track, genre order up to MaxSeeds. Without any
// seed the DefaultSeedGenres are used.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) ([]Track, error) {
	seeds := buildSeeds(req)

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	limit = min(limit, maxRecommendationLimit)

	recs, err := c.api.GetRecommendations(ctx, seeds, req.Targets.attributes(), spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("getting recommendations: %w", err)
	}

	tracks := make([]Track, 0, len(recs.Tracks))
	for _, st := range recs.Tracks {
		if st.ID == "" {
			continue
		}
		tracks = append(tracks, convertTrack(st))
	}
	return tracks, nil
}

// buildSeeds fills at most MaxSeeds seeds, falling back to DefaultSeedGenres.
func buildSeeds(req RecommendRequest) spotify.Seeds {
	var seeds spotify.Seeds
	remaining := MaxSeeds

	for _, a := range req.SeedArtists {
		if remaining == 0 {
			break
		}
		if a == "" {
			continue
		}
		seeds.Artists = append(seeds.Artists, spotify.ID(a))
		remaining--
	}
	for _, t := range req.SeedTracks {
		if remaining == 0 {
			break
		}
		if t == "" {
			continue
		}
		seeds.Tracks = append(seeds.Tracks, spotify.ID(t))
		remaining--
	}
	for _, g := range req.SeedGenres {
		if remaining == 0 {
			break
		}
		if g == "" {
			continue
		}
		seeds.Genres = append(seeds.Genres, g)
		remaining--
	}

	if remaining == MaxSeeds {
		seeds.Genres = append([]string(nil), DefaultSeedGenres...)
	}
	return seeds
}
