package catalog

import (
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
)

// DefaultWeights returns the standard drop weights per rarity tier.
func DefaultWeights() map[entities.Rarity]int {
	return map[entities.Rarity]int{
		entities.RarityCommon:    50,
		entities.RarityUncommon:  25,
		entities.RarityRare:      15,
		entities.RarityEpic:      7,
		entities.RarityLegendary: 2,
	}
}

// DefaultRanges returns the standard primary-stat roll range per tier.
func DefaultRanges() map[entities.Rarity]StatRange {
	return map[entities.Rarity]StatRange{
		entities.RarityCommon:    {Min: 3, Max: 8},
		entities.RarityUncommon:  {Min: 9, Max: 16},
		entities.RarityRare:      {Min: 17, Max: 30},
		entities.RarityEpic:      {Min: 31, Max: 50},
		entities.RarityLegendary: {Min: 51, Max: 90},
	}
}

// DefaultItems returns the built-in item set.
func DefaultItems() []ItemSpec {
	return []ItemSpec{
		// Weapons
		{ID: "rusty_dagger", Name: "Rusty Dagger", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Price: 100},
		{ID: "iron_sword", Name: "Iron Sword", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Price: 200},
		{ID: "steel_blade", Name: "Steel Blade", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Price: 350},
		{ID: "silver_sword", Name: "Silver Sword", Rarity: entities.RarityUncommon, Slot: entities.SlotWeapon, Price: 800},
		{ID: "enchanted_blade", Name: "Enchanted Blade", Rarity: entities.RarityUncommon, Slot: entities.SlotWeapon, Price: 1200},
		{ID: "flaming_sword", Name: "Flaming Sword", Rarity: entities.RarityRare, Slot: entities.SlotWeapon, Price: 3000},
		{ID: "ice_shard", Name: "Ice Shard", Rarity: entities.RarityRare, Slot: entities.SlotWeapon, Price: 2800},
		{ID: "dragon_slayer", Name: "Dragon Slayer", Rarity: entities.RarityEpic, Slot: entities.SlotWeapon, Price: 7500},
		{ID: "void_blade", Name: "Void Blade", Rarity: entities.RarityEpic, Slot: entities.SlotWeapon, Price: 7000},
		{ID: "excalibur", Name: "Excalibur", Rarity: entities.RarityLegendary, Slot: entities.SlotWeapon, Price: 15000},

		// Armor
		{ID: "cloth_robe", Name: "Cloth Robe", Rarity: entities.RarityCommon, Slot: entities.SlotArmor, Price: 80},
		{ID: "leather_armor", Name: "Leather Armor", Rarity: entities.RarityCommon, Slot: entities.SlotArmor, Price: 150},
		{ID: "chain_mail", Name: "Chain Mail", Rarity: entities.RarityCommon, Slot: entities.SlotArmor, Price: 300},
		{ID: "iron_armor", Name: "Iron Armor", Rarity: entities.RarityUncommon, Slot: entities.SlotArmor, Price: 1000},
		{ID: "blessed_robes", Name: "Blessed Robes", Rarity: entities.RarityUncommon, Slot: entities.SlotArmor, Price: 1300},
		{ID: "dragon_scale", Name: "Dragon Scale", Rarity: entities.RarityRare, Slot: entities.SlotArmor, Price: 2500},
		{ID: "mithril_armor", Name: "Mithril Armor", Rarity: entities.RarityRare, Slot: entities.SlotArmor, Price: 3200},
		{ID: "paladin_plate", Name: "Paladin Plate", Rarity: entities.RarityEpic, Slot: entities.SlotArmor, Price: 6000},
		{ID: "aegis_shield", Name: "Aegis Shield", Rarity: entities.RarityLegendary, Slot: entities.SlotArmor, Price: 12000},

		// Accessories
		{ID: "lucky_charm", Name: "Lucky Charm", Rarity: entities.RarityUncommon, Slot: entities.SlotAccessory, Price: 500},
		{ID: "enchanted_ring", Name: "Enchanted Ring", Rarity: entities.RarityRare, Slot: entities.SlotAccessory, Price: 2000},
		{ID: "phoenix_talisman", Name: "Phoenix Talisman", Rarity: entities.RarityEpic, Slot: entities.SlotAccessory, Price: 5500},

		// Consumables
		{ID: "health_potion", Name: "Health Potion", Rarity: entities.RarityCommon, Slot: entities.SlotNone, Price: 50, Heal: 50},
		{ID: "super_health_potion", Name: "Super Health Potion", Rarity: entities.RarityUncommon, Slot: entities.SlotNone, Price: 150, Heal: 150},
		{ID: "elixir_of_life", Name: "Elixir of Life", Rarity: entities.RarityRare, Slot: entities.SlotNone, Price: 500, Heal: 999},
	}
}

// DefaultMonsters returns the built-in monster set, grouped by location.
func DefaultMonsters() []entities.MonsterDefinition {
	return []entities.MonsterDefinition{
		{
			ID: "goblin", Name: "Goblin", Location: "forest", Rarity: entities.RarityCommon,
			Attack: 12, Defense: 3, Speed: 6, MaxHealth: 50,
			Loot: entities.LootTable{
				CoinsMin: 20, CoinsMax: 50, ExperienceMin: 15, ExperienceMax: 30,
				ItemChance: 0.2,
				Items: []entities.LootEntry{
					{ItemID: "health_potion", Weight: 8},
					{ItemID: "rusty_dagger", Weight: 2},
				},
			},
		},
		{
			ID: "wolf", Name: "Wolf", Location: "forest", Rarity: entities.RarityCommon,
			Attack: 18, Defense: 5, Speed: 9, MaxHealth: 70,
			Loot: entities.LootTable{
				CoinsMin: 30, CoinsMax: 70, ExperienceMin: 20, ExperienceMax: 40,
				ItemChance: 0.2,
				Items: []entities.LootEntry{
					{ItemID: "health_potion", Weight: 7},
					{ItemID: "leather_armor", Weight: 3},
				},
			},
		},
		{
			ID: "forest_troll", Name: "Forest Troll", Location: "forest", Rarity: entities.RarityUncommon,
			Attack: 25, Defense: 8, Speed: 4, MaxHealth: 120,
			Loot: entities.LootTable{
				CoinsMin: 80, CoinsMax: 150, ExperienceMin: 50, ExperienceMax: 100,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "iron_sword", Weight: 5},
					{ItemID: "chain_mail", Weight: 5},
				},
			},
		},
		{
			ID: "mountain_lion", Name: "Mountain Lion", Location: "mountains", Rarity: entities.RarityCommon,
			Attack: 35, Defense: 8, Speed: 12, MaxHealth: 90,
			Loot: entities.LootTable{
				CoinsMin: 60, CoinsMax: 120, ExperienceMin: 40, ExperienceMax: 80,
				ItemChance: 0.2,
				Items: []entities.LootEntry{
					{ItemID: "health_potion", Weight: 6},
					{ItemID: "silver_sword", Weight: 4},
				},
			},
		},
		{
			ID: "rock_golem", Name: "Rock Golem", Location: "mountains", Rarity: entities.RarityUncommon,
			Attack: 30, Defense: 15, Speed: 3, MaxHealth: 150,
			Loot: entities.LootTable{
				CoinsMin: 100, CoinsMax: 200, ExperienceMin: 75, ExperienceMax: 150,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "iron_armor", Weight: 6},
					{ItemID: "enchanted_blade", Weight: 4},
				},
			},
		},
		{
			ID: "dragon_whelp", Name: "Dragon Whelp", Location: "mountains", Rarity: entities.RarityRare,
			Attack: 45, Defense: 20, Speed: 10, MaxHealth: 200,
			Loot: entities.LootTable{
				CoinsMin: 200, CoinsMax: 400, ExperienceMin: 150, ExperienceMax: 300,
				ItemChance: 0.4,
				Items: []entities.LootEntry{
					{ItemID: "dragon_scale", Weight: 6},
					{ItemID: "flaming_sword", Weight: 4},
				},
			},
		},
		{
			ID: "skeleton_warrior", Name: "Skeleton Warrior", Location: "dungeon", Rarity: entities.RarityCommon,
			Attack: 20, Defense: 10, Speed: 7, MaxHealth: 80,
			Loot: entities.LootTable{
				CoinsMin: 50, CoinsMax: 100, ExperienceMin: 30, ExperienceMax: 60,
				ItemChance: 0.25,
				Items: []entities.LootEntry{
					{ItemID: "steel_blade", Weight: 5},
					{ItemID: "health_potion", Weight: 5},
				},
			},
		},
		{
			ID: "shadow_wraith", Name: "Shadow Wraith", Location: "dungeon", Rarity: entities.RarityUncommon,
			Attack: 40, Defense: 5, Speed: 14, MaxHealth: 60,
			Loot: entities.LootTable{
				CoinsMin: 70, CoinsMax: 140, ExperienceMin: 50, ExperienceMax: 100,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "enchanted_ring", Weight: 3},
					{ItemID: "super_health_potion", Weight: 7},
				},
			},
		},
		{
			ID: "dungeon_lord", Name: "Dungeon Lord", Location: "dungeon", Rarity: entities.RarityEpic,
			Attack: 60, Defense: 25, Speed: 8, MaxHealth: 300,
			Loot: entities.LootTable{
				CoinsMin: 500, CoinsMax: 1000, ExperienceMin: 300, ExperienceMax: 600,
				ItemChance: 0.6,
				Items: []entities.LootEntry{
					{ItemID: "dragon_slayer", Weight: 4},
					{ItemID: "paladin_plate", Weight: 4},
					{ItemID: "excalibur", Weight: 2},
				},
			},
		},
		{
			ID: "sand_viper", Name: "Sand Viper", Location: "desert", Rarity: entities.RarityCommon,
			Attack: 25, Defense: 2, Speed: 13, MaxHealth: 40,
			Loot: entities.LootTable{
				CoinsMin: 25, CoinsMax: 60, ExperienceMin: 20, ExperienceMax: 40,
				ItemChance: 0.2,
				Items: []entities.LootEntry{
					{ItemID: "health_potion", Weight: 10},
				},
			},
		},
		{
			ID: "mummy", Name: "Mummy", Location: "desert", Rarity: entities.RarityUncommon,
			Attack: 22, Defense: 12, Speed: 4, MaxHealth: 100,
			Loot: entities.LootTable{
				CoinsMin: 80, CoinsMax: 160, ExperienceMin: 60, ExperienceMax: 120,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "blessed_robes", Weight: 5},
					{ItemID: "lucky_charm", Weight: 5},
				},
			},
		},
		{
			ID: "pharaohs_guardian", Name: "Pharaoh's Guardian", Location: "desert", Rarity: entities.RarityRare,
			Attack: 50, Defense: 30, Speed: 9, MaxHealth: 250,
			Loot: entities.LootTable{
				CoinsMin: 400, CoinsMax: 800, ExperienceMin: 250, ExperienceMax: 500,
				ItemChance: 0.5,
				Items: []entities.LootEntry{
					{ItemID: "mithril_armor", Weight: 5},
					{ItemID: "ice_shard", Weight: 3},
					{ItemID: "phoenix_talisman", Weight: 2},
				},
			},
		},
	}
}

// DefaultLocations returns the built-in adventure destinations. Harder
// locations pay better but their monsters hit harder too.
func DefaultLocations() []Location {
	return []Location{
		{
			ID: "forest", Name: "Forest", Difficulty: "easy",
			Loot: entities.LootTable{
				CoinsMin: 50, CoinsMax: 150, ExperienceMin: 20, ExperienceMax: 50,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "health_potion", Weight: 6},
					{ItemID: "iron_sword", Weight: 2},
					{ItemID: "leather_armor", Weight: 2},
				},
			},
		},
		{
			ID: "mountains", Name: "Mountains", Difficulty: "medium",
			Loot: entities.LootTable{
				CoinsMin: 65, CoinsMax: 195, ExperienceMin: 26, ExperienceMax: 65,
				ItemChance: 0.3,
				Items: []entities.LootEntry{
					{ItemID: "silver_sword", Weight: 4},
					{ItemID: "iron_armor", Weight: 4},
					{ItemID: "super_health_potion", Weight: 2},
				},
			},
		},
		{
			ID: "dungeon", Name: "Dungeon", Difficulty: "hard",
			Loot: entities.LootTable{
				CoinsMin: 85, CoinsMax: 255, ExperienceMin: 34, ExperienceMax: 85,
				ItemChance: 0.35,
				Items: []entities.LootEntry{
					{ItemID: "flaming_sword", Weight: 3},
					{ItemID: "dragon_scale", Weight: 3},
					{ItemID: "enchanted_ring", Weight: 2},
					{ItemID: "elixir_of_life", Weight: 2},
				},
			},
		},
		{
			ID: "desert", Name: "Desert", Difficulty: "very_hard",
			Loot: entities.LootTable{
				CoinsMin: 100, CoinsMax: 300, ExperienceMin: 40, ExperienceMax: 100,
				ItemChance: 0.4,
				Items: []entities.LootEntry{
					{ItemID: "dragon_slayer", Weight: 2},
					{ItemID: "paladin_plate", Weight: 2},
					{ItemID: "phoenix_talisman", Weight: 2},
					{ItemID: "elixir_of_life", Weight: 4},
				},
			},
		},
	}
}

// Default builds the catalog from the built-in content using src for the
// stat rolls.
func Default(src rng.Source) (*Catalog, error) {
	return New(&Config{
		Items:     DefaultItems(),
		Monsters:  DefaultMonsters(),
		Locations: DefaultLocations(),
		Weights:   DefaultWeights(),
		Ranges:    DefaultRanges(),
		Source:    src,
	})
}
