package mood

import "errors"

// ErrUnknownMood is returned when a mood name or value is outside the enumeration.
var ErrUnknownMood = errors.New("unknown mood")
