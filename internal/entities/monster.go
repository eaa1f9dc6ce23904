package entities

// LootEntry is a weighted item drop in a monster's loot table.
type LootEntry struct {
	ItemID string `json:"item_id"`
	Weight int    `json:"weight"`
}

// LootTable describes what a monster yields on defeat. Coin and experience
// amounts are drawn uniformly from their ranges.
type LootTable struct {
	CoinsMin      int64       `json:"coins_min"`
	CoinsMax      int64       `json:"coins_max"`
	ExperienceMin int64       `json:"experience_min"`
	ExperienceMax int64       `json:"experience_max"`
	Items         []LootEntry `json:"items,omitempty"`
	// ItemChance is the probability [0,1] that any item drops at all.
	ItemChance float64 `json:"item_chance"`
}

// MonsterDefinition is an immutable catalog entry describing an opponent.
type MonsterDefinition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Rarity   Rarity `json:"rarity"`

	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
	MaxHealth int `json:"max_health"`

	Loot LootTable `json:"loot"`
}
