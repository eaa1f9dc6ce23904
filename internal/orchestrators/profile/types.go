package profile

import (
	"github.com/epicquest/rpg-engine/internal/entities"
)

// CreateInput is the input for creating a profile. UserID becomes the
// profile id; one profile exists per user.
type CreateInput struct {
	UserID string
}

// CreateOutput is the output for creating a profile
type CreateOutput struct {
	Profile *entities.Profile
}

// GetInput is the input for fetching a profile view
type GetInput struct {
	UserID string
}

// GetOutput carries the stored profile plus the stat totals with equipped
// modifiers applied.
type GetOutput struct {
	Profile   *entities.Profile
	Effective entities.Modifiers
}

// EquipInput is the input for equipping an owned item. Swap must be set
// to displace an item already occupying the slot; without it an occupied
// slot is a conflict.
type EquipInput struct {
	UserID string
	ItemID string
	Swap   bool
}

// EquipOutput reports the slot filled and the item displaced back to
// inventory, empty when the slot was free.
type EquipOutput struct {
	Profile  *entities.Profile
	Slot     entities.Slot
	Replaced string
}

// UnequipInput is the input for clearing an equipment slot
type UnequipInput struct {
	UserID string
	Slot   entities.Slot
}

// UnequipOutput reports the item returned to inventory
type UnequipOutput struct {
	Profile *entities.Profile
	ItemID  string
}

// UseItemInput is the input for consuming one unit of a consumable
type UseItemInput struct {
	UserID string
	ItemID string
}

// UseItemOutput reports the health restored by the consumable
type UseItemOutput struct {
	Profile  *entities.Profile
	Restored int
}

// HealInput is the input for the paid full heal
type HealInput struct {
	UserID string
}

// HealOutput reports the heal result and what it cost
type HealOutput struct {
	Profile  *entities.Profile
	Restored int
	Cost     int64
}
