package spotify

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Weightless", "weightless"},
		{"Hurt (Remastered 2011)", "hurt"},
		{"Don't Stop Me Now - Remastered", "don t stop me now"},
		{"Uptown Funk [Radio Edit]", "uptown funk"},
		{"Claire  de   Lune", "claire de lune"},
		{"Time (Pink Floyd)", "time pink floyd"}, // non-variant brackets stay
	}

	for _, tc := range tests {
		if got := Normalize(tc.input); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "plain pair",
			title:  "Watermark",
			artist: "Enya",
			want:   "track:watermark artist:enya",
		},
		{
			name:   "variant suffix stripped",
			title:  "Hurt (Live)",
			artist: "Johnny Cash",
			want:   "track:hurt artist:johnny cash",
		},
		{
			name:   "symbol-only title falls back to raw input",
			title:  "!!!",
			artist: "Chk Chk Chk",
			want:   "track:!!! artist:chk chk chk",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := searchQuery(tc.title, tc.artist); got != tc.want {
				t.Errorf("searchQuery(%q, %q) = %q, want %q", tc.title, tc.artist, got, tc.want)
			}
		})
	}
}
