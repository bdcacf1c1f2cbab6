package matching

// Weights is the scoring policy for the composite match score. Clinical fit
// outweighs logistics: specialization is heaviest, then availability, then
// communication and age match, with caseload lightest (mostly a tie-break
// signal). Exposed as a struct so the policy can be retuned and tested
// without touching the ranking mechanics.
type Weights struct {
	Specialization float64
	Availability   float64
	Communication  float64
	AgeMatch       float64
	Caseload       float64
}

// DefaultWeights is the production scoring policy.
var DefaultWeights = Weights{
	Specialization: 0.35,
	Availability:   0.25,
	Communication:  0.15,
	AgeMatch:       0.15,
	Caseload:       0.10,
}

// Total returns the sum of all component weights.
func (w Weights) Total() float64 {
	return w.Specialization + w.Availability + w.Communication + w.AgeMatch + w.Caseload
}

// Composite combines the five component scores into one [0,100] score.
func (w Weights) Composite(d ComponentScores) float64 {
	total := w.Total()
	if total == 0 {
		return 0
	}
	sum := w.Specialization*d.Specialization +
		w.Availability*d.Availability +
		w.Communication*d.Communication +
		w.AgeMatch*d.AgeMatch +
		w.Caseload*d.Caseload
	return clampScore(sum / total)
}

// ComponentScores holds the five raw component scores, each in [0,100].
type ComponentScores struct {
	Specialization float64
	Availability   float64
	Communication  float64
	AgeMatch       float64
	Caseload       float64
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
