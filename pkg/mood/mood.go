// Package mood defines the closed set of moods Aura infers from strokes,
// their visual palettes, and the fixed-size score vector indexed by mood.
package mood

import "fmt"

// Mood is one of the five circumplex categories.
type Mood int

const (
	// Joy is positive valence with moderate arousal.
	Joy Mood = iota

	// Calm is positive valence with low arousal.
	Calm

	// Anxiety is negative valence with high arousal.
	Anxiety

	// Sadness is negative valence with low arousal.
	Sadness

	// Anger is strongly negative valence with very high arousal.
	Anger
)

// Count is the number of moods. Scores and per-mood tables have this length.
const Count = 5

// All lists every mood in enumeration order.
var All = [Count]Mood{Joy, Calm, Anxiety, Sadness, Anger}

var names = [Count]string{"joy", "calm", "anxiety", "sadness", "anger"}

var labels = [Count]string{"Joy", "Calm", "Anxiety", "Sadness", "Anger"}

var icons = [Count]string{
	"sun.max.fill",
	"drop.fill",
	"bolt.fill",
	"cloud.rain.fill",
	"flame.fill",
}

var palettes = [Count][3]Color{
	{MustHex("D4A574"), MustHex("C4956A"), MustHex("E8C9A0")},
	{MustHex("8BA4B8"), MustHex("A3B8C8"), MustHex("C2D1DB")},
	{MustHex("9B8EA8"), MustHex("B5A8C0"), MustHex("7D7289")},
	{MustHex("6B7B8D"), MustHex("5A6A7D"), MustHex("8895A3")},
	{MustHex("B07060"), MustHex("C4806E"), MustHex("8B5E52")},
}

// Valid reports whether m is one of the five moods.
func (m Mood) Valid() bool {
	return m >= 0 && m < Count
}

// String returns the lowercase identifier used in persisted score maps.
func (m Mood) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mood(%d)", int(m))
	}
	return names[m]
}

// Label returns the display name.
func (m Mood) Label() string {
	if !m.Valid() {
		return "Unknown"
	}
	return labels[m]
}

// Icon returns the SF Symbols name shown for the mood.
func (m Mood) Icon() string {
	if !m.Valid() {
		return ""
	}
	return icons[m]
}

// Palette returns the three particle colors for the mood.
func (m Mood) Palette() []Color {
	if !m.Valid() {
		m = Calm
	}
	p := palettes[m]
	return p[:]
}

// Color returns the primary palette color.
func (m Mood) Color() Color {
	return m.Palette()[0]
}

// IsIntense reports whether the mood warrants offering guided breathing.
func (m Mood) IsIntense() bool {
	return m == Anxiety || m == Anger
}

// Parse returns the mood with the given identifier.
func Parse(s string) (Mood, error) {
	for i, n := range names {
		if n == s {
			return Mood(i), nil
		}
	}
	return Calm, fmt.Errorf("%w: %q", ErrUnknownMood, s)
}

// MarshalText encodes the mood as its identifier.
func (m Mood) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMood, int(m))
	}
	return []byte(names[m]), nil
}

// UnmarshalText decodes an identifier produced by MarshalText.
func (m *Mood) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
