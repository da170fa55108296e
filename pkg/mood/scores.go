package mood

// Scores is a per-mood score vector indexed by Mood.
//
// The pipeline carries two distinct Scores values: raw Gaussian memberships
// and smoothed (softmax then EMA) scores. Neither is guaranteed to sum to 1.
type Scores [Count]float64

// Uniform returns a vector with every entry set to v.
func Uniform(v float64) Scores {
	var s Scores
	for i := range s {
		s[i] = v
	}
	return s
}

// Get returns the score for m.
func (s Scores) Get(m Mood) float64 {
	if !m.Valid() {
		return 0
	}
	return s[m]
}

// Dominant returns the mood with the highest score.
// Ties resolve to the earliest mood in enumeration order.
func (s Scores) Dominant() Mood {
	best := Joy
	for _, m := range All[1:] {
		if s[m] > s[best] {
			best = m
		}
	}
	return best
}

// Max returns the largest score.
func (s Scores) Max() float64 {
	return s[s.Dominant()]
}

// Sum returns the total of all scores.
func (s Scores) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Map converts the vector to the string-keyed form handed to persistence layers.
func (s Scores) Map() map[string]float64 {
	out := make(map[string]float64, Count)
	for _, m := range All {
		out[m.String()] = s[m]
	}
	return out
}

// FromMap builds a vector from the string-keyed form. Unknown keys are ignored
// and missing moods score 0.
func FromMap(in map[string]float64) Scores {
	var s Scores
	for k, v := range in {
		if m, err := Parse(k); err == nil {
			s[m] = v
		}
	}
	return s
}
