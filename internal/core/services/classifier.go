package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

const (
	// maxClassifyInput caps the text sent to the analyzer.
	maxClassifyInput = 100
	// maxFallbackName keeps the fallback mood label short enough for the orb.
	maxFallbackName = 20

	fallbackMoodIcon = "💭"
)

// Classifier normalizes free text into a Mood. It never fails: when the
// analyzer is unreachable or returns garbage, the input text itself becomes
// the mood name.
type Classifier struct {
	analyzer ports.MoodAnalyzer
	log      *slog.Logger
}

// NewClassifier constructs a Classifier around a mood analyzer.
func NewClassifier(analyzer ports.MoodAnalyzer, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{analyzer: analyzer, log: log}
}

// Classify trims and caps the input, asks the analyzer, and falls back to a
// deterministic local mood on any upstream failure.
func (c *Classifier) Classify(ctx context.Context, text string) domain.Mood {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxClassifyInput {
		text = string(runes[:maxClassifyInput])
	}

	mood, err := c.analyzer.AnalyzeMood(ctx, text)
	if err != nil || mood.Name == "" {
		if err != nil {
			c.log.Warn("mood analysis failed, using fallback", "error", err)
		}
		return fallbackMood(text)
	}
	mood.IsCustom = true
	return mood
}

func fallbackMood(text string) domain.Mood {
	name := text
	if runes := []rune(text); len(runes) > maxFallbackName {
		name = string(runes[:maxFallbackName]) + "..."
	}
	return domain.Mood{Name: name, Icon: fallbackMoodIcon, IsCustom: true}
}
