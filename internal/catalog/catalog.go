// Package catalog holds the static shop data: wholesale item templates and
// customer archetypes, with the reputation tiers that gate both.
package catalog

import "math"

// Tier constants: rarity brackets unlocked by reputation.
const (
	TierCommon = iota
	TierUncommon
	TierRare
)

// CustomerTierThresholds is the reputation required to attract each
// customer tier.
var CustomerTierThresholds = []int{0, 5, 15}

// ItemTierThresholds is the reputation required before each item tier
// appears on the wholesale market.
var ItemTierThresholds = []int{0, 10, 25}

// MaxTier returns the highest tier whose threshold the given reputation
// meets. Thresholds are ascending; tier 0 is always available.
func MaxTier(reputation int, thresholds []int) int {
	tier := 0
	for i := len(thresholds) - 1; i >= 0; i-- {
		if reputation >= thresholds[i] {
			tier = i
			break
		}
	}
	return tier
}

// AskingPrice is the shelf price shown to customers when the shopkeeper
// has not set one: 150% of base value, rounded.
func AskingPrice(baseValue int) int {
	return int(math.Round(float64(baseValue) * 1.5))
}
