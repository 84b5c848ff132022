// Customer spawning — picks an archetype the shop's reputation can attract
// and instantiates it with budget variance and an extra flavor trait.
package customer

import (
	"errors"
	"math"
	"math/rand"

	"github.com/talgya/haggle/internal/catalog"
)

// ErrNoEligibleCustomers means no archetype tier is unlocked, which cannot
// happen with a tier-0 threshold of 0 but is guarded anyway.
var ErrNoEligibleCustomers = errors.New("no eligible customer archetypes")

// MinBudget is the floor applied after budget variance.
const MinBudget = 10

// Instance is one customer encounter. It copies the template fields so the
// catalog stays immutable, and lives only until the encounter concludes.
type Instance struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Budget      int      `json:"budget"`
	Interests   []string `json:"interests"`
	Tier        int      `json:"tier"`
}

// HasTrait reports whether the instance carries the named trait.
func (c *Instance) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Spawner creates customer instances from the archetype catalog.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn selects uniformly among the archetypes the current reputation
// unlocks and instantiates one.
func (s *Spawner) Spawn(reputation int) (*Instance, error) {
	eligible := catalog.EligibleCustomers(reputation)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleCustomers
	}
	tmpl := eligible[s.rng.Intn(len(eligible))]
	return s.instantiate(tmpl), nil
}

func (s *Spawner) instantiate(tmpl catalog.CustomerTemplate) *Instance {
	// Budget variance: +/-15%, floored.
	variation := s.rng.Float64()*0.30 - 0.15
	budget := int(math.Round(float64(tmpl.Budget) * (1 + variation)))
	if budget < MinBudget {
		budget = MinBudget
	}

	traits := make([]string, len(tmpl.Traits))
	copy(traits, tmpl.Traits)

	// One extra flavor trait, drawn from the pool minus anything the
	// archetype already has. An exhausted pool adds nothing.
	var pool []string
	for _, t := range catalog.MinorTraits {
		if !contains(traits, t) {
			pool = append(pool, t)
		}
	}
	if len(pool) > 0 {
		traits = append(traits, pool[s.rng.Intn(len(pool))])
	}

	return &Instance{
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Traits:      traits,
		Budget:      budget,
		Interests:   tmpl.Interests,
		Tier:        tmpl.Tier,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
