package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hean-Yi/Aura/pkg/stroke"
)

// Entry is the archival record of a drawing handed to a persistence layer.
type Entry struct {
	ID       uuid.UUID          `json:"id"`
	Date     time.Time          `json:"date"`
	Scores   map[string]float64 `json:"mood_scores"`
	Dominant string             `json:"dominant_mood"`
	Summary  stroke.Summary     `json:"stroke_summary"`
	Duration float64            `json:"duration"` // seconds since the first sample
}

// Entry snapshots the session at now.
func (s *Session) Entry(now time.Time) Entry {
	var duration float64
	if s.hasDrawn {
		duration = max(now.Sub(s.started).Seconds(), 0)
	}
	return Entry{
		ID:       s.id,
		Date:     now,
		Scores:   s.Scores().Map(),
		Dominant: s.mood.String(),
		Summary:  s.engine.Summary(),
		Duration: duration,
	}
}
