package domain

import "errors"

// MaxActiveMoods caps how many moods can sit on the orb at once.
const MaxActiveMoods = 4

var (
	ErrMoodLimit     = errors.New("domain: mood limit reached")
	ErrDuplicateMood = errors.New("domain: duplicate mood")
)

// Mood is a named emotional tag with a display glyph. IsCustom marks moods
// derived from free-text classification rather than the fixed picker.
type Mood struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
}
