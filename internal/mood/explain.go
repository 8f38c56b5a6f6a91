package mood

// Explanation notes, in evaluation order.
const (
	NoteWarm           = "warm colors dominant, energy and valence skew higher"
	NoteCool           = "cool colors dominant, more melancholic mood"
	NoteBalanced       = "balanced warmth, intermediate mood"
	NoteHighSaturation = "high saturation, elevated danceability"
	NoteLowSaturation  = "low saturation, moderate danceability"
	NoteLowLightness   = "low lightness, higher acousticness and instrumentalness"
	NoteHighLightness  = "high lightness, more open and bright mood"
)

// Explain describes a merged mood vector in plain words.
//
// Exactly one warmth note is always present. Saturation and lightness
// notes are only added outside their middle bands.
func Explain(merged Metrics) []string {
	notes := make([]string, 0, 3)

	switch {
	case merged.Warmth >= 0.6:
		notes = append(notes, NoteWarm)
	case merged.Warmth <= 0.4:
		notes = append(notes, NoteCool)
	default:
		notes = append(notes, NoteBalanced)
	}

	switch {
	case merged.Saturation >= 0.6:
		notes = append(notes, NoteHighSaturation)
	case merged.Saturation <= 0.35:
		notes = append(notes, NoteLowSaturation)
	}

	switch {
	case merged.Lightness <= 0.4:
		notes = append(notes, NoteLowLightness)
	case merged.Lightness >= 0.65:
		notes = append(notes, NoteHighLightness)
	}

	return notes
}
