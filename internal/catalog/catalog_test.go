package catalog

import "testing"

func TestMaxTier(t *testing.T) {
	cases := []struct {
		name       string
		reputation int
		thresholds []int
		want       int
	}{
		{"zero rep customer tiers", 0, CustomerTierThresholds, 0},
		{"just below uncommon customers", 4, CustomerTierThresholds, 0},
		{"uncommon customers unlock", 5, CustomerTierThresholds, 1},
		{"rare customers unlock", 15, CustomerTierThresholds, 2},
		{"beyond highest threshold", 100, CustomerTierThresholds, 2},
		{"negative rep stays at common", -3, CustomerTierThresholds, 0},
		{"item tiers lag customer tiers", 5, ItemTierThresholds, 0},
		{"uncommon items unlock", 10, ItemTierThresholds, 1},
		{"rare items unlock", 25, ItemTierThresholds, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxTier(tc.reputation, tc.thresholds); got != tc.want {
				t.Errorf("MaxTier(%d) = %d, want %d", tc.reputation, got, tc.want)
			}
		})
	}
}

func TestAskingPrice(t *testing.T) {
	cases := []struct {
		baseValue int
		want      int
	}{
		{50, 75},
		{35, 53}, // 52.5 rounds up
		{10, 15},
		{1, 2}, // 1.5 rounds up
		{0, 0},
	}

	for _, tc := range cases {
		if got := AskingPrice(tc.baseValue); got != tc.want {
			t.Errorf("AskingPrice(%d) = %d, want %d", tc.baseValue, got, tc.want)
		}
	}
}

func TestEligibleItemsRespectsTierLocks(t *testing.T) {
	for _, it := range EligibleItems(0) {
		if it.Tier != TierCommon {
			t.Errorf("item %s (tier %d) should be locked at rep 0", it.ID, it.Tier)
		}
	}

	all := EligibleItems(25)
	if len(all) != len(WholesaleItems) {
		t.Errorf("rep 25 should unlock all %d items, got %d", len(WholesaleItems), len(all))
	}
}

func TestEligibleCustomersRespectsTierLocks(t *testing.T) {
	for _, c := range EligibleCustomers(0) {
		if c.Tier != TierCommon {
			t.Errorf("customer %q (tier %d) should be locked at rep 0", c.Name, c.Tier)
		}
	}

	all := EligibleCustomers(15)
	if len(all) != len(CustomerTypes) {
		t.Errorf("rep 15 should unlock all %d archetypes, got %d", len(CustomerTypes), len(all))
	}
}

func TestItemByID(t *testing.T) {
	it, ok := ItemByID("wh001")
	if !ok {
		t.Fatal("wh001 should exist")
	}
	if it.Name != "Healing Potion" || it.WholesalePrice != 25 || it.BaseValue != 50 {
		t.Errorf("unexpected wh001 data: %+v", it)
	}

	if _, ok := ItemByID("wh999"); ok {
		t.Error("wh999 should not exist")
	}
}
