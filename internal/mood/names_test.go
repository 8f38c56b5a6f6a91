package mood

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		targets Targets
		want    string
	}{
		{"high energy high valence", Targets{Energy: 0.8, Valence: 0.7, Acousticness: 0.2}, "Upbeat Party"},
		{"high energy low valence", Targets{Energy: 0.8, Valence: 0.3, Acousticness: 0.2}, "Intense & Dark"},
		{"low energy high valence", Targets{Energy: 0.4, Valence: 0.7, Acousticness: 0.3}, "Chill & Happy"},
		{"low energy low valence", Targets{Energy: 0.3, Valence: 0.3, Acousticness: 0.4}, "Reflective & Melancholy"},
		{"high acousticness adds modifier", Targets{Energy: 0.4, Valence: 0.7, Acousticness: 0.8}, "Chill & Happy (Acoustic)"},
		{"boundary energy exactly 0.6 is low", Targets{Energy: 0.6, Valence: 0.7, Acousticness: 0.2}, "Chill & Happy"},
		{"boundary valence exactly 0.5 is low", Targets{Energy: 0.8, Valence: 0.5, Acousticness: 0.2}, "Intense & Dark"},
		{"boundary acousticness exactly 0.6 no modifier", Targets{Energy: 0.8, Valence: 0.7, Acousticness: 0.6}, "Upbeat Party"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.targets); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameForMappedPalettes(t *testing.T) {
	warm, err := MapHexList([]string{"#FF4500"})
	if err != nil {
		t.Fatalf("MapHexList() error = %v", err)
	}
	if got := Name(warm.Targets); got != "Upbeat Party" {
		t.Errorf("Name(warm) = %q, want %q", got, "Upbeat Party")
	}

	cool, err := MapHexList([]string{"#1E3A5F"})
	if err != nil {
		t.Fatalf("MapHexList() error = %v", err)
	}
	if got := Name(cool.Targets); got != "Reflective & Melancholy (Acoustic)" {
		t.Errorf("Name(cool) = %q, want %q", got, "Reflective & Melancholy (Acoustic)")
	}
}

func TestDescribe(t *testing.T) {
	quadrants := []Targets{
		{Energy: 0.8, Valence: 0.7},
		{Energy: 0.8, Valence: 0.3},
		{Energy: 0.4, Valence: 0.7},
		{Energy: 0.3, Valence: 0.3},
	}

	seen := make(map[string]bool)
	for _, q := range quadrants {
		d := Describe(q)
		if d == "" {
			t.Errorf("Describe(%+v) is empty", q)
		}
		seen[d] = true
	}
	if len(seen) != len(quadrants) {
		t.Errorf("got %d distinct descriptions, want %d", len(seen), len(quadrants))
	}
}
