package shop

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/haggle/internal/catalog"
)

// ShelfUpgradeCostPerSlot scales the upgrade price with current capacity.
const ShelfUpgradeCostPerSlot = 200

// ItemInstance is one purchased unit of stock. It lives in exactly one of
// {inventory, shelf} until it is sold.
type ItemInstance struct {
	InstanceID     string `json:"instance_id"`
	TemplateID     string `json:"template_id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Tier           int    `json:"tier"`
	WholesalePrice int    `json:"wholesale_price"`
	BaseValue      int    `json:"base_value"`
	AskingPrice    int    `json:"asking_price"`
}

func newInstance(tmpl catalog.ItemTemplate) *ItemInstance {
	return &ItemInstance{
		InstanceID:     uuid.NewString(),
		TemplateID:     tmpl.ID,
		Name:           tmpl.Name,
		Category:       tmpl.Category,
		Tier:           tmpl.Tier,
		WholesalePrice: tmpl.WholesalePrice,
		BaseValue:      tmpl.BaseValue,
		AskingPrice:    catalog.AskingPrice(tmpl.BaseValue),
	}
}

// buyItem purchases one unit of a wholesale template into inventory.
func (s *Shop) buyItem(templateID string) error {
	if s.gameOver {
		return ErrGameOver
	}
	tmpl, ok := catalog.ItemByID(templateID)
	if !ok {
		return fmt.Errorf("%w: template %s", ErrUnknownItem, templateID)
	}
	if tmpl.Tier > s.rep.MaxTier(catalog.ItemTierThresholds) {
		return ErrItemLocked
	}
	if err := s.ledger.Spend(tmpl.WholesalePrice); err != nil {
		s.say(fmt.Sprintf("Not enough gold to buy %s (%s).", tmpl.Name, gold(tmpl.WholesalePrice)))
		return err
	}
	s.inventory = append(s.inventory, newInstance(tmpl))
	s.say(fmt.Sprintf("Bought %s for %s.", tmpl.Name, gold(tmpl.WholesalePrice)))
	return nil
}

// moveToShelf displays an inventory item. Shelf placement is an engine
// invariant here, not a UI courtesy: only legal while setting up, and a
// full shelf leaves both collections unchanged.
func (s *Shop) moveToShelf(instanceID string) error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.phase != PhaseSettingUp {
		return ErrWrongPhase
	}
	idx := -1
	for i, it := range s.inventory {
		if it.InstanceID == instanceID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: instance %s not in inventory", ErrUnknownItem, instanceID)
	}
	if len(s.shelf) >= s.capacity {
		return ErrShelfFull
	}
	item := s.inventory[idx]
	s.inventory = append(s.inventory[:idx], s.inventory[idx+1:]...)
	s.shelf = append(s.shelf, item)
	return nil
}

// upgradeShelf buys one more display slot at capacity * 200 gold.
func (s *Shop) upgradeShelf() error {
	if s.gameOver {
		return ErrGameOver
	}
	cost := s.capacity * ShelfUpgradeCostPerSlot
	if err := s.ledger.Spend(cost); err != nil {
		s.say(fmt.Sprintf("Not enough gold to upgrade shelf! Need %s.", gold(cost)))
		return err
	}
	s.capacity++
	s.say(fmt.Sprintf("Upgraded shelf capacity to %d! (-%s)", s.capacity, gold(cost)))
	return nil
}

// shelfItem finds a displayed item by instance id.
func (s *Shop) shelfItem(instanceID string) (*ItemInstance, int) {
	for i, it := range s.shelf {
		if it.InstanceID == instanceID {
			return it, i
		}
	}
	return nil, -1
}

// removeFromShelf drops a displayed item (it was sold).
func (s *Shop) removeFromShelf(idx int) {
	s.shelf = append(s.shelf[:idx], s.shelf[idx+1:]...)
}
