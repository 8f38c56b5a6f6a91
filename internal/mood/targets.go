package mood

// Tempo and loudness ranges of the synthesized targets.
const (
	TempoMin    = 60.0
	TempoMax    = 180.0
	LoudnessMin = -60.0
	LoudnessMax = 0.0
)

// Targets are the audio parameters sent to the recommendation endpoint.
type Targets struct {
	Energy           float64 `json:"target_energy"`
	Valence          float64 `json:"target_valence"`
	Danceability     float64 `json:"target_danceability"`
	Acousticness     float64 `json:"target_acousticness"`
	Instrumentalness float64 `json:"target_instrumentalness"`
	Tempo            float64 `json:"target_tempo"`    // BPM in [60,180]
	Loudness         float64 `json:"target_loudness"` // dB in [-60,0]
}

// TargetsFrom turns a merged mood vector into audio targets.
// Tempo leans on energy more than danceability; loudness follows energy
// linearly from -60 dB to 0 dB.
func TargetsFrom(merged Metrics) Targets {
	tempoBase := clamp01(0.6*merged.Energy + 0.4*merged.Danceability)

	return Targets{
		Energy:           clamp01(merged.Energy),
		Valence:          clamp01(merged.Valence),
		Danceability:     clamp01(merged.Danceability),
		Acousticness:     clamp01(merged.Acousticness),
		Instrumentalness: clamp01(merged.Instrumentalness),
		Tempo:            clamp(TempoMin+tempoBase*(TempoMax-TempoMin), TempoMin, TempoMax),
		Loudness:         clamp(LoudnessMin+merged.Energy*(LoudnessMax-LoudnessMin), LoudnessMin, LoudnessMax),
	}
}

// HasSignal reports whether any target moved off its floor value.
// An empty palette produces targets without signal.
func HasSignal(t Targets) bool {
	return t.Energy != 0 ||
		t.Valence != 0 ||
		t.Danceability != 0 ||
		t.Acousticness != 0 ||
		t.Instrumentalness != 0 ||
		t.Tempo != TempoMin ||
		t.Loudness != LoudnessMin
}
