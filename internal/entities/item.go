package entities

import "fmt"

// Rarity is the ordered item classification. Higher tiers roll better stat
// modifiers and drop less often.
type Rarity int

// Rarity tiers, ordered
const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

// String returns the lowercase name of the tier.
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", int(r))
}

// Valid reports whether r is a known tier.
func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(text []byte) error {
	for tier, name := range rarityNames {
		if name == string(text) {
			*r = tier
			return nil
		}
	}
	return fmt.Errorf("unknown rarity %q", string(text))
}

// Modifiers are the concrete stat bonuses an item grants while equipped.
type Modifiers struct {
	Attack    int `json:"attack,omitempty"`
	Defense   int `json:"defense,omitempty"`
	Speed     int `json:"speed,omitempty"`
	MaxHealth int `json:"max_health,omitempty"`
}

// Add returns the element-wise sum of two modifier sets.
func (m Modifiers) Add(other Modifiers) Modifiers {
	return Modifiers{
		Attack:    m.Attack + other.Attack,
		Defense:   m.Defense + other.Defense,
		Speed:     m.Speed + other.Speed,
		MaxHealth: m.MaxHealth + other.MaxHealth,
	}
}

// ItemDefinition is an immutable catalog entry. Profiles reference items by
// id only; definitions are never copied into profiles. Modifiers hold the
// concrete values rolled within the rarity tier's range when the catalog
// was built.
type ItemDefinition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rarity    Rarity    `json:"rarity"`
	Slot      Slot      `json:"slot"`
	Price     int64     `json:"price"`
	Modifiers Modifiers `json:"modifiers"`

	// Heal is the health restored when consumed. Only meaningful for
	// SlotNone consumables.
	Heal int `json:"heal,omitempty"`
}

// Consumable reports whether the item can be used from inventory.
func (d *ItemDefinition) Consumable() bool {
	return d.Slot == SlotNone && d.Heal > 0
}
