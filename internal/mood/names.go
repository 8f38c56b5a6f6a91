package mood

// Name labels targets with an energy/valence quadrant.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Acousticness modifier: if > 0.6, appends " (Acoustic)" to the name.
func Name(t Targets) string {
	var baseName string

	highEnergy := t.Energy > 0.6
	highValence := t.Valence > 0.5

	switch {
	case highEnergy && highValence:
		baseName = "Upbeat Party"
	case highEnergy && !highValence:
		baseName = "Intense & Dark"
	case !highEnergy && highValence:
		baseName = "Chill & Happy"
	default:
		baseName = "Reflective & Melancholy"
	}

	if t.Acousticness > 0.6 {
		return baseName + " (Acoustic)"
	}

	return baseName
}

// Describe returns a one-line description of the quadrant Name picks.
func Describe(t Targets) string {
	switch {
	case t.Energy > 0.6 && t.Valence > 0.5:
		return "High-energy, positive vibes - perfect for dancing and celebrations"
	case t.Energy > 0.6:
		return "Intense, driving energy with darker emotional tones"
	case t.Valence > 0.5:
		return "Relaxed and uplifting - great for unwinding"
	default:
		return "Contemplative and introspective - ideal for quiet moments"
	}
}
