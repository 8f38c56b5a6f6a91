package spotify

import "github.com/zmb3/spotify/v2"

// Track is a recommended track as returned to callers.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	URL        string   `json:"url,omitempty"`
	PreviewURL string   `json:"preview_url,omitempty"`
	Image      string   `json:"image,omitempty"`
}

// Targets are the optional tunable attributes of a recommendation request.
// A nil field is not sent.
type Targets struct {
	Energy           *float64 `json:"target_energy,omitempty"`
	Valence          *float64 `json:"target_valence,omitempty"`
	Danceability     *float64 `json:"target_danceability,omitempty"`
	Acousticness     *float64 `json:"target_acousticness,omitempty"`
	Instrumentalness *float64 `json:"target_instrumentalness,omitempty"`
	Tempo            *float64 `json:"target_tempo,omitempty"`
	Loudness         *float64 `json:"target_loudness,omitempty"`
}

// IsEmpty reports whether no target is set.
func (t Targets) IsEmpty() bool {
	return t.Energy == nil &&
		t.Valence == nil &&
		t.Danceability == nil &&
		t.Acousticness == nil &&
		t.Instrumentalness == nil &&
		t.Tempo == nil &&
		t.Loudness == nil
}

// attributes converts the set targets into the library's request attributes.
func (t Targets) attributes() *spotify.TrackAttributes {
	if t.IsEmpty() {
		return nil
	}

	attrs := spotify.NewTrackAttributes()
	if t.Energy != nil {
		attrs = attrs.TargetEnergy(*t.Energy)
	}
	if t.Valence != nil {
		attrs = attrs.TargetValence(*t.Valence)
	}
	if t.Danceability != nil {
		attrs = attrs.TargetDanceability(*t.Danceability)
	}
	if t.Acousticness != nil {
		attrs = attrs.TargetAcousticness(*t.Acousticness)
	}
	if t.Instrumentalness != nil {
		attrs = attrs.TargetInstrumentalness(*t.Instrumentalness)
	}
	if t.Tempo != nil {
		attrs = attrs.TargetTempo(*t.Tempo)
	}
	if t.Loudness != nil {
		attrs = attrs.TargetLoudness(*t.Loudness)
	}
	return attrs
}

// convertTrack converts a Spotify SimpleTrack to Track.
func convertTrack(st spotify.SimpleTrack) Track {
	artists := make([]string, len(st.Artists))
	for i, a := range st.Artists {
		artists[i] = a.Name
	}

	track := Track{
		ID:         st.ID.String(),
		Name:       st.Name,
		Artists:    artists,
		URL:        st.ExternalURLs["spotify"],
		PreviewURL: st.PreviewURL,
	}
	if len(st.Album.Images) > 0 {
		track.Image = st.Album.Images[0].URL
	}
	return track
}
