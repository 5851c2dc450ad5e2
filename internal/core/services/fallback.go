package services

import (
	"strings"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// curatedFallback is the hand-picked mood table used when the generative
// collaborator is unreachable.
var curatedFallback = map[string][]domain.Song{
	"Calm": {
		{Title: "Weightless", Artist: "Marconi Union"},
		{Title: "Claire de Lune", Artist: "Claude Debussy"},
		{Title: "Watermark", Artist: "Enya"},
	},
	"Energetic": {
		{Title: "Don't Stop Me Now", Artist: "Queen"},
		{Title: "Uptown Funk", Artist: "Mark Ronson ft. Bruno Mars"},
		{Title: "Can't Hold Us", Artist: "Macklemore & Ryan Lewis"},
	},
	"Melancholic": {
		{Title: "Hurt", Artist: "Johnny Cash"},
		{Title: "Everybody Hurts", Artist: "R.E.M."},
		{Title: "Nothing Compares 2 U", Artist: "Sinéad O'Connor"},
	},
	"Optimistic": {
		{Title: "Happy", Artist: "Pharrell Williams"},
		{Title: "Walking on Sunshine", Artist: "Katrina and the Waves"},
		{Title: "Good Vibrations", Artist: "The Beach Boys"},
	},
	"Inspired": {
		{Title: "Eye of the Tiger", Artist: "Survivor"},
		{Title: "Hall of Fame", Artist: "The Script ft. will.i.am"},
		{Title: "Roar", Artist: "Katy Perry"},
	},
}

// curatedSongs concatenates the curated list for each requested mood in
// order. Unknown mood names synthesize two generic placeholders instead.
func curatedSongs(moodNames []string) []domain.Song {
	var songs []domain.Song
	for _, name := range moodNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if curated, ok := curatedFallback[name]; ok {
			songs = append(songs, curated...)
			continue
		}
		songs = append(songs,
			domain.Song{Title: name + " Vibes", Artist: "Various Artists"},
			domain.Song{Title: "Feeling " + name, Artist: "The Mood Makers"},
		)
	}
	return songs
}
