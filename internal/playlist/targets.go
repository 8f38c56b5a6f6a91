package playlist

import (
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
)

// TargetOverrides are caller supplied target values. A nil field is left to
// the derived targets.
type TargetOverrides struct {
	Energy           *float64 `json:"target_energy,omitempty"`
	Valence          *float64 `json:"target_valence,omitempty"`
	Danceability     *float64 `json:"target_danceability,omitempty"`
	Acousticness     *float64 `json:"target_acousticness,omitempty"`
	Instrumentalness *float64 `json:"target_instrumentalness,omitempty"`
	Tempo            *float64 `json:"target_tempo,omitempty"`
	Loudness         *float64 `json:"target_loudness,omitempty"`
}

// Resolve merges derived targets with overrides.
// An override always wins. Without derived targets only overrides are set.
func Resolve(derived *mood.Targets, overrides TargetOverrides) spotify.Targets {
	var t spotify.Targets
	if derived != nil {
		t = spotify.Targets{
			Energy:           value(derived.Energy),
			Valence:          value(derived.Valence),
			Danceability:     value(derived.Danceability),
			Acousticness:     value(derived.Acousticness),
			Instrumentalness: value(derived.Instrumentalness),
			Tempo:            value(derived.Tempo),
			Loudness:         value(derived.Loudness),
		}
	}

	override(&t.Energy, overrides.Energy)
	override(&t.Valence, overrides.Valence)
	override(&t.Danceability, overrides.Danceability)
	override(&t.Acousticness, overrides.Acousticness)
	override(&t.Instrumentalness, overrides.Instrumentalness)
	override(&t.Tempo, overrides.Tempo)
	override(&t.Loudness, overrides.Loudness)
	return t
}

func value(v float64) *float64 {
	return &v
}

func override(dst **float64, v *float64) {
	if v != nil {
		*dst = value(*v)
	}
}
