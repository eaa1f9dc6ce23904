// Package catalog holds the closed registry of item and monster definitions.
// Definitions are validated once at load, immutable afterwards, and always
// referenced by id. Concrete stat modifiers are rolled at load time within
// each rarity tier's configured range from an injectable random source, so
// a fixed seed builds an identical catalog.
package catalog

import (
	"sort"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
)

// ItemSpec declares an item before its concrete modifiers are rolled.
type ItemSpec struct {
	ID     string
	Name   string
	Rarity entities.Rarity
	Slot   entities.Slot
	Price  int64
	// Heal marks a consumable; the item must use SlotNone.
	Heal int
}

// StatRange bounds the primary stat roll for a rarity tier.
type StatRange struct {
	Min int
	Max int
}

// Location is a named adventure destination with its own reward table.
type Location struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Difficulty string            `json:"difficulty"`
	Loot       entities.LootTable `json:"loot"`
}

// Config holds everything the catalog is built from.
type Config struct {
	Items     []ItemSpec
	Monsters  []entities.MonsterDefinition
	Locations []Location
	// Weights are the relative drop weights per rarity tier.
	Weights map[entities.Rarity]int
	// Ranges bound the primary stat roll per rarity tier.
	Ranges map[entities.Rarity]StatRange
	// Source rolls concrete modifiers at load time.
	Source rng.Source
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Source == nil {
		return errors.InvalidArgument("random source cannot be nil")
	}
	if len(cfg.Items) == 0 {
		return errors.InvalidArgument("catalog needs at least one item")
	}
	return nil
}

// Catalog is the loaded registry.
type Catalog struct {
	items     map[string]*entities.ItemDefinition
	monsters  map[string]*entities.MonsterDefinition
	byLoc     map[string][]*entities.MonsterDefinition
	locations map[string]*Location
	weights   map[entities.Rarity]int
}

// New builds and validates a catalog. Unknown rarities or slots, duplicate
// ids, or loot entries referencing unknown items all fail the load.
func New(cfg *Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:     make(map[string]*entities.ItemDefinition, len(cfg.Items)),
		monsters:  make(map[string]*entities.MonsterDefinition, len(cfg.Monsters)),
		byLoc:     make(map[string][]*entities.MonsterDefinition),
		locations: make(map[string]*Location, len(cfg.Locations)),
		weights:   cfg.Weights,
	}
	if c.weights == nil {
		c.weights = DefaultWeights()
	}

	ranges := cfg.Ranges
	if ranges == nil {
		ranges = DefaultRanges()
	}

	for i := range cfg.Items {
		spec := cfg.Items[i]
		if err := validateItemSpec(&spec); err != nil {
			return nil, err
		}
		if _, exists := c.items[spec.ID]; exists {
			return nil, errors.AlreadyExistsf("duplicate item id %q", spec.ID)
		}
		def := &entities.ItemDefinition{
			ID:     spec.ID,
			Name:   spec.Name,
			Rarity: spec.Rarity,
			Slot:   spec.Slot,
			Price:  spec.Price,
			Heal:   spec.Heal,
		}
		def.Modifiers = rollModifiers(&spec, ranges[spec.Rarity], cfg.Source)
		c.items[def.ID] = def
	}

	for i := range cfg.Monsters {
		m := cfg.Monsters[i]
		if err := c.validateMonster(&m); err != nil {
			return nil, err
		}
		if _, exists := c.monsters[m.ID]; exists {
			return nil, errors.AlreadyExistsf("duplicate monster id %q", m.ID)
		}
		c.monsters[m.ID] = &m
		c.byLoc[m.Location] = append(c.byLoc[m.Location], &m)
	}

	for i := range cfg.Locations {
		loc := cfg.Locations[i]
		if loc.ID == "" {
			return nil, errors.InvalidArgument("location id cannot be empty")
		}
		if _, exists := c.locations[loc.ID]; exists {
			return nil, errors.AlreadyExistsf("duplicate location id %q", loc.ID)
		}
		if err := c.validateLootItems(loc.Loot.Items, "location", loc.ID); err != nil {
			return nil, err
		}
		c.locations[loc.ID] = &loc
	}

	return c, nil
}

func validateItemSpec(spec *ItemSpec) error {
	vb := errors.NewValidationBuilder()
	if spec.ID == "" {
		vb.RequiredField("ID")
	}
	if spec.Name == "" {
		vb.RequiredField("Name")
	}
	if !spec.Rarity.Valid() {
		vb.Fieldf("Rarity", "unknown tier %d", int(spec.Rarity))
	}
	if !entities.ValidEquipSlot(spec.Slot) && spec.Slot != entities.SlotNone {
		vb.Fieldf("Slot", "unknown slot %q", spec.Slot)
	}
	if spec.Heal > 0 && spec.Slot != entities.SlotNone {
		vb.Field("Heal", "only slotless consumables can heal")
	}
	if spec.Price < 0 {
		vb.NonNegativeField("Price", spec.Price)
	}
	return vb.Build()
}

func (c *Catalog) validateMonster(m *entities.MonsterDefinition) error {
	vb := errors.NewValidationBuilder()
	if m.ID == "" {
		vb.RequiredField("ID")
	}
	if m.Name == "" {
		vb.RequiredField("Name")
	}
	if m.MaxHealth <= 0 {
		vb.Fieldf("MaxHealth", "must be positive, got %d", m.MaxHealth)
	}
	if m.Attack <= 0 {
		vb.Fieldf("Attack", "must be positive, got %d", m.Attack)
	}
	if m.Loot.CoinsMax < m.Loot.CoinsMin || m.Loot.ExperienceMax < m.Loot.ExperienceMin {
		vb.Field("Loot", "reward ranges must not be inverted")
	}
	if err := vb.Build(); err != nil {
		return err
	}
	return c.validateLootItems(m.Loot.Items, "monster", m.ID)
}

func (c *Catalog) validateLootItems(items []entities.LootEntry, kind, owner string) error {
	for _, entry := range items {
		if _, ok := c.items[entry.ItemID]; !ok {
			return errors.InvalidArgumentf("%s %q loot references unknown item %q", kind, owner, entry.ItemID)
		}
		if entry.Weight <= 0 {
			return errors.InvalidArgumentf("%s %q loot entry %q needs a positive weight", kind, owner, entry.ItemID)
		}
	}
	return nil
}

// rollModifiers rolls the slot's primary stat within the tier range.
func rollModifiers(spec *ItemSpec, bounds StatRange, src rng.Source) entities.Modifiers {
	if spec.Slot == entities.SlotNone {
		return entities.Modifiers{}
	}
	value := rng.IntBetween(src, bounds.Min, bounds.Max)
	switch spec.Slot {
	case entities.SlotWeapon:
		return entities.Modifiers{Attack: value}
	case entities.SlotArmor:
		return entities.Modifiers{Defense: value}
	case entities.SlotAccessory:
		// Accessories split their roll between speed and vitality.
		return entities.Modifiers{Speed: (value + 1) / 2, MaxHealth: value * 2}
	}
	return entities.Modifiers{}
}

// Define returns the item definition for an id.
func (c *Catalog) Define(id string) (*entities.ItemDefinition, error) {
	def, ok := c.items[id]
	if !ok {
		return nil, errors.NotFoundf("item %q not found", id)
	}
	return def, nil
}

// Monster returns the monster definition for an id.
func (c *Catalog) Monster(id string) (*entities.MonsterDefinition, error) {
	def, ok := c.monsters[id]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", id)
	}
	return def, nil
}

// Location returns the adventure location for an id.
func (c *Catalog) Location(id string) (*Location, error) {
	loc, ok := c.locations[id]
	if !ok {
		return nil, errors.NotFoundf("location %q not found", id)
	}
	return loc, nil
}

// Locations returns all location ids, sorted for stable iteration.
func (c *Catalog) Locations() []string {
	ids := make([]string, 0, len(c.locations))
	for id := range c.locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Items returns all item definitions sorted by id.
func (c *Catalog) Items() []*entities.ItemDefinition {
	defs := make([]*entities.ItemDefinition, 0, len(c.items))
	for _, def := range c.items {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// RandomMonster draws a uniform monster from a location.
func (c *Catalog) RandomMonster(src rng.Source, location string) (*entities.MonsterDefinition, error) {
	pool := c.byLoc[location]
	if len(pool) == 0 {
		return nil, errors.NotFoundf("no monsters at location %q", location)
	}
	return pool[src.Intn(len(pool))], nil
}

// RollRarity draws a rarity tier by configured weight.
func (c *Catalog) RollRarity(src rng.Source) entities.Rarity {
	total := 0
	for _, w := range c.weights {
		total += w
	}
	if total <= 0 {
		return entities.RarityCommon
	}
	pick := src.Intn(total)
	// Iterate tiers in order so the draw is stable for a given source state.
	for tier := entities.RarityCommon; tier <= entities.RarityLegendary; tier++ {
		pick -= c.weights[tier]
		if pick < 0 {
			return tier
		}
	}
	return entities.RarityCommon
}

// RandomItem draws a uniform item of the given tier, falling back one tier
// at a time when the tier has no entries.
func (c *Catalog) RandomItem(src rng.Source, rarity entities.Rarity) (*entities.ItemDefinition, error) {
	for tier := rarity; tier >= entities.RarityCommon; tier-- {
		pool := c.itemsOfRarity(tier)
		if len(pool) > 0 {
			return pool[src.Intn(len(pool))], nil
		}
	}
	return nil, errors.NotFoundf("no items at or below rarity %s", rarity)
}

func (c *Catalog) itemsOfRarity(rarity entities.Rarity) []*entities.ItemDefinition {
	var pool []*entities.ItemDefinition
	for _, def := range c.Items() {
		if def.Rarity == rarity {
			pool = append(pool, def)
		}
	}
	return pool
}

// RollLoot draws a concrete reward bundle from a loot table.
func RollLoot(src rng.Source, table entities.LootTable) entities.RewardBundle {
	bundle := entities.RewardBundle{
		Coins:      int64(rng.IntBetween(src, int(table.CoinsMin), int(table.CoinsMax))),
		Experience: int64(rng.IntBetween(src, int(table.ExperienceMin), int(table.ExperienceMax))),
	}
	if len(table.Items) == 0 || table.ItemChance <= 0 {
		return bundle
	}
	if src.Float64() >= table.ItemChance {
		return bundle
	}

	total := 0
	for _, entry := range table.Items {
		total += entry.Weight
	}
	pick := src.Intn(total)
	for _, entry := range table.Items {
		pick -= entry.Weight
		if pick < 0 {
			bundle.Items = map[string]int{entry.ItemID: 1}
			break
		}
	}
	return bundle
}
