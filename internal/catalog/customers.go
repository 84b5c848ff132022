package catalog

// Personality traits with mechanical weight. Everything else is flavor the
// negotiation agent interprets on its own.
const (
	TraitImpatient = "impatient"
	TraitPatient   = "patient"
)

// CustomerTemplate is an immutable customer archetype.
type CustomerTemplate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Budget      int      `json:"budget"`
	Interests   []string `json:"interests"`
	Tier        int      `json:"tier"`
}

// CustomerTypes is the archetype pool the spawner draws from.
var CustomerTypes = []CustomerTemplate{
	{
		Name:        "Nervous Apprentice",
		Description: "a young apprentice clutching a small coin purse",
		Traits:      []string{"timid", "easily impressed", "frugal"},
		Budget:      60,
		Interests:   []string{CategoryPotion, CategoryTool},
		Tier:        TierCommon,
	},
	{
		Name:        "Gruff Mercenary",
		Description: "a battle-scarred mercenary looking for functional gear",
		Traits:      []string{"practical", TraitImpatient, "fair"},
		Budget:      250,
		Interests:   []string{CategoryWeapon, CategoryArmor, CategoryPotion},
		Tier:        TierCommon,
	},
	{
		Name:        "Weary Farmer",
		Description: "a farmer looking for simple tools or protection",
		Traits:      []string{"practical", "frugal", "honest"},
		Budget:      80,
		Interests:   []string{CategoryTool, CategoryShield, CategoryGeneral},
		Tier:        TierCommon,
	},
	{
		Name:        "Curious Scholar",
		Description: "a scholar interested in unusual items",
		Traits:      []string{"curious", TraitPatient, "distracted"},
		Budget:      120,
		Interests:   []string{CategoryPotion, CategoryTool},
		Tier:        TierUncommon,
	},
	{
		Name:        "Shrewd Trader",
		Description: "a traveling trader with a keen eye for value",
		Traits:      []string{"calculating", TraitPatient, "stingy", "knowledgeable"},
		Budget:      300,
		Interests:   []string{CategoryGeneral, CategoryTool},
		Tier:        TierUncommon,
	},
	{
		Name:        "Flustered Noble",
		Description: "a minor noble, clearly out of their element",
		Traits:      []string{"arrogant", TraitImpatient, "distracted", "impulsive"},
		Budget:      400,
		Interests:   []string{CategoryArmor, CategoryWeapon},
		Tier:        TierRare,
	},
}

// MinorTraits is the flavor pool the spawner adds one trait from.
var MinorTraits = []string{
	"in a hurry", "distracted", "cheerful", "grumpy",
	"curious", "suspicious", "talkative", "quiet",
}

// EligibleCustomers returns the archetypes whose tier is unlocked at the
// given reputation.
func EligibleCustomers(reputation int) []CustomerTemplate {
	maxTier := MaxTier(reputation, CustomerTierThresholds)
	var out []CustomerTemplate
	for _, c := range CustomerTypes {
		if c.Tier <= maxTier {
			out = append(out, c)
		}
	}
	return out
}
