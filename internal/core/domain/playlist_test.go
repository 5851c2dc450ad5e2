package domain

import (
	"strings"
	"testing"
)

func TestDedupeSongsByTitle(t *testing.T) {
	tests := []struct {
		name  string
		songs []Song
		want  []Song
	}{
		{
			name:  "no duplicates",
			songs: []Song{{Title: "A", Artist: "One"}, {Title: "B", Artist: "Two"}},
			want:  []Song{{Title: "A", Artist: "One"}, {Title: "B", Artist: "Two"}},
		},
		{
			name: "same title different artist collapses, last seen wins",
			songs: []Song{
				{Title: "Hurt", Artist: "Nine Inch Nails"},
				{Title: "Roar", Artist: "Katy Perry"},
				{Title: "Hurt", Artist: "Johnny Cash"},
			},
			want: []Song{
				{Title: "Hurt", Artist: "Johnny Cash"},
				{Title: "Roar", Artist: "Katy Perry"},
			},
		},
		{
			name:  "empty input",
			songs: nil,
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DedupeSongsByTitle(tc.songs)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d songs, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("song %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCoverImageURL(t *testing.T) {
	got := CoverImageURL("  Calm ")
	if !strings.HasSuffix(got, "?music,Calm") {
		t.Errorf("CoverImageURL = %q, want trailing ?music,Calm", got)
	}
	if CoverImageURL("Calm") != CoverImageURL("Calm") {
		t.Error("CoverImageURL is not deterministic")
	}
}
