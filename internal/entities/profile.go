// Package entities defines the persistent domain records. Profiles are owned
// by the profile repository and only mutated through engine calls.
package entities

import "time"

// Slot is an equipment slot. A profile holds at most one item id per slot.
type Slot string

// Equipment slots
const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
	SlotNone      Slot = "none"
)

// ValidEquipSlot reports whether s is a slot gear can occupy.
func ValidEquipSlot(s Slot) bool {
	switch s {
	case SlotWeapon, SlotArmor, SlotAccessory:
		return true
	}
	return false
}

// Profile is the persistent per-user character record. Version increases
// strictly on every successful write; it is the optimistic concurrency gate.
type Profile struct {
	ID         string `json:"id"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`

	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
	MaxHealth int `json:"max_health"`
	Health    int `json:"health"`

	Coins int64 `json:"coins"`

	// Inventory maps item id to owned quantity. Equipping consumes one
	// unit; unequipping returns it.
	Inventory map[string]int `json:"inventory,omitempty"`

	// Equipped maps slot to the item id occupying it.
	Equipped map[Slot]string `json:"equipped,omitempty"`

	// Cooldowns maps action id to expiry. Expiry is checked lazily at the
	// next invocation; there is no timer anywhere.
	Cooldowns map[string]time.Time `json:"cooldowns,omitempty"`

	DailyStreak int       `json:"daily_streak"`
	LastDaily   time.Time `json:"last_daily"`

	BattlesWon  int `json:"battles_won"`
	BattlesLost int `json:"battles_lost"`
	Adventures  int `json:"adventures"`
	WorkShifts  int `json:"work_shifts"`

	// Run is the active dungeon run, nil when none is in progress.
	Run *DungeonRun `json:"run,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy. Engine mutators work on copies so a failed
// conditional write leaves nothing shared half-changed.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Inventory != nil {
		cp.Inventory = make(map[string]int, len(p.Inventory))
		for k, v := range p.Inventory {
			cp.Inventory[k] = v
		}
	}
	if p.Equipped != nil {
		cp.Equipped = make(map[Slot]string, len(p.Equipped))
		for k, v := range p.Equipped {
			cp.Equipped[k] = v
		}
	}
	if p.Cooldowns != nil {
		cp.Cooldowns = make(map[string]time.Time, len(p.Cooldowns))
		for k, v := range p.Cooldowns {
			cp.Cooldowns[k] = v
		}
	}
	cp.Run = p.Run.Clone()
	return &cp
}

// ItemCount returns the inventory quantity for an item id.
func (p *Profile) ItemCount(itemID string) int {
	if p.Inventory == nil {
		return 0
	}
	return p.Inventory[itemID]
}

// AddItem increases the inventory quantity for an item id.
func (p *Profile) AddItem(itemID string, qty int) {
	if qty <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[itemID] += qty
}

// RemoveItem decreases the inventory quantity for an item id, deleting the
// entry at zero. Reports whether the profile held enough.
func (p *Profile) RemoveItem(itemID string, qty int) bool {
	if qty <= 0 {
		return true
	}
	have := p.ItemCount(itemID)
	if have < qty {
		return false
	}
	if have == qty {
		delete(p.Inventory, itemID)
	} else {
		p.Inventory[itemID] = have - qty
	}
	return true
}

// EquippedItem returns the item id in a slot, empty when the slot is free.
func (p *Profile) EquippedItem(slot Slot) string {
	if p.Equipped == nil {
		return ""
	}
	return p.Equipped[slot]
}

// CooldownExpiry returns the stored expiry for an action, zero when unset.
func (p *Profile) CooldownExpiry(action string) time.Time {
	if p.Cooldowns == nil {
		return time.Time{}
	}
	return p.Cooldowns[action]
}

// SetCooldown stores the expiry for an action.
func (p *Profile) SetCooldown(action string, expiry time.Time) {
	if p.Cooldowns == nil {
		p.Cooldowns = make(map[string]time.Time)
	}
	p.Cooldowns[action] = expiry
}
