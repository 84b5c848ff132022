package catalog

// Item categories referenced by customer interests.
const (
	CategoryPotion  = "potion"
	CategoryWeapon  = "weapon"
	CategoryArmor   = "armor"
	CategoryShield  = "shield"
	CategoryTool    = "tool"
	CategoryGeneral = "general"
)

// ItemTemplate is an immutable wholesale catalog entry.
type ItemTemplate struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Tier           int    `json:"tier"`
	WholesalePrice int    `json:"wholesale_price"`
	BaseValue      int    `json:"base_value"`
}

// WholesaleItems is the full stock list available during the management phase.
var WholesaleItems = []ItemTemplate{
	{ID: "wh001", Name: "Healing Potion", Category: CategoryPotion, Tier: TierCommon, WholesalePrice: 25, BaseValue: 50},
	{ID: "wh002", Name: "Mana Potion", Category: CategoryPotion, Tier: TierUncommon, WholesalePrice: 30, BaseValue: 60},
	{ID: "wh003", Name: "Iron Sword", Category: CategoryWeapon, Tier: TierRare, WholesalePrice: 100, BaseValue: 180},
	{ID: "wh004", Name: "Leather Armor", Category: CategoryArmor, Tier: TierUncommon, WholesalePrice: 80, BaseValue: 150},
	{ID: "wh005", Name: "Wooden Shield", Category: CategoryShield, Tier: TierUncommon, WholesalePrice: 50, BaseValue: 90},
	{ID: "wh006", Name: "Lockpicks", Category: CategoryTool, Tier: TierCommon, WholesalePrice: 15, BaseValue: 35},
	{ID: "wh007", Name: "Rope (50ft)", Category: CategoryGeneral, Tier: TierCommon, WholesalePrice: 10, BaseValue: 20},
	{ID: "wh008", Name: "Torch", Category: CategoryGeneral, Tier: TierCommon, WholesalePrice: 5, BaseValue: 10},
}

// ItemByID looks up a wholesale template.
func ItemByID(id string) (ItemTemplate, bool) {
	for _, it := range WholesaleItems {
		if it.ID == id {
			return it, true
		}
	}
	return ItemTemplate{}, false
}

// EligibleItems returns the wholesale entries whose tier is unlocked at the
// given reputation.
func EligibleItems(reputation int) []ItemTemplate {
	maxTier := MaxTier(reputation, ItemTierThresholds)
	var out []ItemTemplate
	for _, it := range WholesaleItems {
		if it.Tier <= maxTier {
			out = append(out, it)
		}
	}
	return out
}
