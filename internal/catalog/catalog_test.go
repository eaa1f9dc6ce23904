package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func (s *CatalogTestSuite) SetupTest() {
	c, err := catalog.Default(rng.New(1))
	s.Require().NoError(err)
	s.catalog = c
}

func (s *CatalogTestSuite) TestDefine() {
	def, err := s.catalog.Define("iron_sword")
	s.Require().NoError(err)

	s.Equal("Iron Sword", def.Name)
	s.Equal(entities.RarityCommon, def.Rarity)
	s.Equal(entities.SlotWeapon, def.Slot)
	s.Positive(def.Modifiers.Attack)
	s.Zero(def.Modifiers.Defense)
}

func (s *CatalogTestSuite) TestDefine_NotFound() {
	def, err := s.catalog.Define("nonexistent")

	s.Nil(def)
	s.True(errors.IsNotFound(err))
}

func (s *CatalogTestSuite) TestRolls_ReproducibleWithSameSeed() {
	first, err := catalog.Default(rng.New(7))
	s.Require().NoError(err)
	second, err := catalog.Default(rng.New(7))
	s.Require().NoError(err)

	for _, def := range first.Items() {
		other, err := second.Define(def.ID)
		s.Require().NoError(err)
		s.Equal(def.Modifiers, other.Modifiers, def.ID)
	}
}

func (s *CatalogTestSuite) TestRolls_WithinRarityRange() {
	ranges := catalog.DefaultRanges()
	for _, def := range s.catalog.Items() {
		if def.Slot == entities.SlotNone {
			s.Equal(entities.Modifiers{}, def.Modifiers, def.ID)
			continue
		}

		bounds := ranges[def.Rarity]
		primary := 0
		switch def.Slot {
		case entities.SlotWeapon:
			primary = def.Modifiers.Attack
		case entities.SlotArmor:
			primary = def.Modifiers.Defense
		case entities.SlotAccessory:
			// Accessories derive speed and vitality from the primary roll.
			s.Positive(def.Modifiers.Speed, def.ID)
			s.Positive(def.Modifiers.MaxHealth, def.ID)
			continue
		}
		s.GreaterOrEqual(primary, bounds.Min, def.ID)
		s.LessOrEqual(primary, bounds.Max, def.ID)
	}
}

func (s *CatalogTestSuite) TestMonster() {
	m, err := s.catalog.Monster("dungeon_lord")
	s.Require().NoError(err)

	s.Equal("dungeon", m.Location)
	s.Positive(m.Attack)
	s.Positive(m.MaxHealth)
}

func (s *CatalogTestSuite) TestRandomMonster_UnknownLocation() {
	m, err := s.catalog.RandomMonster(rng.New(1), "atlantis")

	s.Nil(m)
	s.True(errors.IsNotFound(err))
}

func (s *CatalogTestSuite) TestRollRarity_RespectsWeights() {
	src := rng.New(3)
	counts := make(map[entities.Rarity]int)
	for i := 0; i < 5000; i++ {
		counts[s.catalog.RollRarity(src)]++
	}

	// Common carries half the weight; legendary 2%. Loose bounds, the
	// point is ordering, not exact frequencies.
	s.Greater(counts[entities.RarityCommon], counts[entities.RarityUncommon])
	s.Greater(counts[entities.RarityUncommon], counts[entities.RarityRare])
	s.Greater(counts[entities.RarityRare], counts[entities.RarityLegendary])
	s.Positive(counts[entities.RarityLegendary])
}

func (s *CatalogTestSuite) TestRandomItem_FallsBackToLowerTier() {
	// Build a catalog with no legendary items at all.
	cfg := &catalog.Config{
		Items: []catalog.ItemSpec{
			{ID: "stick", Name: "Stick", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Price: 1},
		},
		Source: rng.New(1),
	}
	c, err := catalog.New(cfg)
	s.Require().NoError(err)

	def, err := c.RandomItem(rng.New(1), entities.RarityLegendary)
	s.Require().NoError(err)
	s.Equal("stick", def.ID)
}

func (s *CatalogTestSuite) TestRollLoot_WithinRanges() {
	m, err := s.catalog.Monster("goblin")
	s.Require().NoError(err)

	src := rng.New(5)
	for i := 0; i < 200; i++ {
		bundle := catalog.RollLoot(src, m.Loot)
		s.GreaterOrEqual(bundle.Coins, m.Loot.CoinsMin)
		s.LessOrEqual(bundle.Coins, m.Loot.CoinsMax)
		s.GreaterOrEqual(bundle.Experience, m.Loot.ExperienceMin)
		s.LessOrEqual(bundle.Experience, m.Loot.ExperienceMax)
		for itemID := range bundle.Items {
			_, err := s.catalog.Define(itemID)
			s.NoError(err, "loot produced unknown item %s", itemID)
		}
	}
}

func (s *CatalogTestSuite) TestNew_ValidationFailures() {
	src := rng.New(1)
	base := catalog.ItemSpec{ID: "sword", Name: "Sword", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Price: 10}

	testCases := []struct {
		name string
		cfg  *catalog.Config
	}{
		{"nil config", nil},
		{"no source", &catalog.Config{Items: []catalog.ItemSpec{base}}},
		{"no items", &catalog.Config{Source: src}},
		{
			"duplicate item id",
			&catalog.Config{Items: []catalog.ItemSpec{base, base}, Source: src},
		},
		{
			"healing gear",
			&catalog.Config{
				Items:  []catalog.ItemSpec{{ID: "x", Name: "X", Rarity: entities.RarityCommon, Slot: entities.SlotWeapon, Heal: 10}},
				Source: src,
			},
		},
		{
			"loot references unknown item",
			&catalog.Config{
				Items: []catalog.ItemSpec{base},
				Monsters: []entities.MonsterDefinition{{
					ID: "imp", Name: "Imp", Location: "cave", Attack: 5, MaxHealth: 10,
					Loot: entities.LootTable{
						ItemChance: 1,
						Items:      []entities.LootEntry{{ItemID: "missing", Weight: 1}},
					},
				}},
				Source: src,
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, err := catalog.New(tc.cfg)
			s.Nil(c)
			s.Error(err)
		})
	}
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
