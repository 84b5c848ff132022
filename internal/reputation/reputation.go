// Package reputation tracks the shopkeeper's standing. The score moves only
// on negotiation outcomes and gates which customers and goods show up.
package reputation

// Tracker is an unbounded integer score.
type Tracker struct {
	Score int `json:"score"`
}

// Adjust shifts the score by delta (per outcome: +1, 0, or -1).
func (t *Tracker) Adjust(delta int) {
	t.Score += delta
}

// MaxTier returns the highest tier index whose ascending threshold the
// current score meets. Tier 0 is always reachable.
func (t *Tracker) MaxTier(thresholds []int) int {
	tier := 0
	for i := len(thresholds) - 1; i >= 0; i-- {
		if t.Score >= thresholds[i] {
			tier = i
			break
		}
	}
	return tier
}
