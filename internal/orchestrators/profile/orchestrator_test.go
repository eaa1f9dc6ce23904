package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	profileorc "github.com/epicquest/rpg-engine/internal/orchestrators/profile"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
	"github.com/epicquest/rpg-engine/internal/testutils"
)

const testUserID = "user_123"

type ProfileOrchestratorTestSuite struct {
	suite.Suite
	svc     profileorc.Service
	repo    profilerepo.Repository
	catalog *catalog.Catalog
	cleanup func()
	ctx     context.Context
}

func (s *ProfileOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := profilerepo.NewRedis(&profilerepo.RedisConfig{
		Client: client,
		Clock:  clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
	s.repo = repo

	cat, err := catalog.Default(rng.New(1))
	s.Require().NoError(err)
	s.catalog = cat

	svc, err := profileorc.NewOrchestrator(&profileorc.Config{
		ProfileRepo: repo,
		Catalog:     cat,
	})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *ProfileOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

// mutate applies a direct repository write, bypassing the orchestrator.
func (s *ProfileOrchestratorTestSuite) mutate(fn func(p *entities.Profile)) *entities.Profile {
	updated, err := profilerepo.Apply(s.ctx, s.repo, testUserID, 3, func(p *entities.Profile) error {
		fn(p)
		return nil
	})
	s.Require().NoError(err)
	return updated
}

func (s *ProfileOrchestratorTestSuite) create() *entities.Profile {
	out, err := s.svc.Create(s.ctx, &profileorc.CreateInput{UserID: testUserID})
	s.Require().NoError(err)
	return out.Profile
}

func (s *ProfileOrchestratorTestSuite) TestCreate_StartingValues() {
	p := s.create()
	s.Equal(1, p.Level)
	s.Equal(100, p.MaxHealth)
	s.Equal(100, p.Health)
	s.Equal(10, p.Attack)
	s.Equal(5, p.Defense)
	s.Equal(5, p.Speed)
	s.Equal(int64(100), p.Coins)
	s.Equal(int64(1), p.Version)
}

func (s *ProfileOrchestratorTestSuite) TestCreate_Duplicate() {
	s.create()
	_, err := s.svc.Create(s.ctx, &profileorc.CreateInput{UserID: testUserID})
	s.True(errors.IsAlreadyExists(err))
}

func (s *ProfileOrchestratorTestSuite) TestGet_EffectiveStats() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.Equipped = map[entities.Slot]string{entities.SlotWeapon: "rusty_dagger"}
	})

	def, err := s.catalog.Define("rusty_dagger")
	s.Require().NoError(err)

	out, err := s.svc.Get(s.ctx, &profileorc.GetInput{UserID: testUserID})
	s.Require().NoError(err)
	s.Equal(10+def.Modifiers.Attack, out.Effective.Attack)
	s.Equal(5, out.Effective.Defense)
}

func (s *ProfileOrchestratorTestSuite) TestGet_NotFound() {
	_, err := s.svc.Get(s.ctx, &profileorc.GetInput{UserID: "nobody"})
	s.True(errors.IsNotFound(err))
}

func (s *ProfileOrchestratorTestSuite) TestEquip() {
	s.create()
	s.mutate(func(p *entities.Profile) { p.AddItem("rusty_dagger", 1) })

	out, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "rusty_dagger"})
	s.Require().NoError(err)
	s.Equal(entities.SlotWeapon, out.Slot)
	s.Empty(out.Replaced)
	s.Equal("rusty_dagger", out.Profile.EquippedItem(entities.SlotWeapon))
	s.Zero(out.Profile.ItemCount("rusty_dagger"))
}

func (s *ProfileOrchestratorTestSuite) TestEquip_SwapsOccupiedSlot() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.AddItem("rusty_dagger", 1)
		p.AddItem("iron_sword", 1)
	})

	_, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "rusty_dagger"})
	s.Require().NoError(err)

	out, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "iron_sword", Swap: true})
	s.Require().NoError(err)
	s.Equal("rusty_dagger", out.Replaced)
	s.Equal("iron_sword", out.Profile.EquippedItem(entities.SlotWeapon))
	s.Equal(1, out.Profile.ItemCount("rusty_dagger"))
}

func (s *ProfileOrchestratorTestSuite) TestEquip_OccupiedSlotWithoutSwap() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.AddItem("rusty_dagger", 1)
		p.AddItem("iron_sword", 1)
	})

	_, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "rusty_dagger"})
	s.Require().NoError(err)

	_, err = s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "iron_sword"})
	s.True(errors.IsAlreadyExists(err))

	// Nothing moved: the dagger stays equipped, the sword stays owned.
	got, err := s.svc.Get(s.ctx, &profileorc.GetInput{UserID: testUserID})
	s.Require().NoError(err)
	s.Equal("rusty_dagger", got.Profile.EquippedItem(entities.SlotWeapon))
	s.Equal(1, got.Profile.ItemCount("iron_sword"))
}

func (s *ProfileOrchestratorTestSuite) TestEquip_NotOwned() {
	s.create()
	_, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "rusty_dagger"})
	s.True(errors.IsNotFound(err))
}

func (s *ProfileOrchestratorTestSuite) TestEquip_NotEquippable() {
	s.create()
	s.mutate(func(p *entities.Profile) { p.AddItem("health_potion", 1) })
	_, err := s.svc.Equip(s.ctx, &profileorc.EquipInput{UserID: testUserID, ItemID: "health_potion"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ProfileOrchestratorTestSuite) TestUnequip() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.Equipped = map[entities.Slot]string{entities.SlotWeapon: "rusty_dagger"}
	})

	out, err := s.svc.Unequip(s.ctx, &profileorc.UnequipInput{UserID: testUserID, Slot: entities.SlotWeapon})
	s.Require().NoError(err)
	s.Equal("rusty_dagger", out.ItemID)
	s.Empty(out.Profile.EquippedItem(entities.SlotWeapon))
	s.Equal(1, out.Profile.ItemCount("rusty_dagger"))
}

func (s *ProfileOrchestratorTestSuite) TestUnequip_EmptySlot() {
	s.create()
	_, err := s.svc.Unequip(s.ctx, &profileorc.UnequipInput{UserID: testUserID, Slot: entities.SlotArmor})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *ProfileOrchestratorTestSuite) TestUseItem() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.Health = 30
		p.AddItem("health_potion", 2)
	})

	out, err := s.svc.UseItem(s.ctx, &profileorc.UseItemInput{UserID: testUserID, ItemID: "health_potion"})
	s.Require().NoError(err)
	s.Equal(50, out.Restored)
	s.Equal(80, out.Profile.Health)
	s.Equal(1, out.Profile.ItemCount("health_potion"))
}

func (s *ProfileOrchestratorTestSuite) TestUseItem_CapsAtMaxHealth() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.Health = 90
		p.AddItem("health_potion", 1)
	})

	out, err := s.svc.UseItem(s.ctx, &profileorc.UseItemInput{UserID: testUserID, ItemID: "health_potion"})
	s.Require().NoError(err)
	s.Equal(10, out.Restored)
	s.Equal(100, out.Profile.Health)
}

func (s *ProfileOrchestratorTestSuite) TestUseItem_FullHealthRejected() {
	s.create()
	s.mutate(func(p *entities.Profile) { p.AddItem("health_potion", 1) })

	_, err := s.svc.UseItem(s.ctx, &profileorc.UseItemInput{UserID: testUserID, ItemID: "health_potion"})
	s.True(errors.IsFailedPrecondition(err))

	// The aborted write must not consume the potion.
	got, err := s.repo.Get(s.ctx, profilerepo.GetInput{ID: testUserID})
	s.Require().NoError(err)
	s.Equal(1, got.Profile.ItemCount("health_potion"))
}

func (s *ProfileOrchestratorTestSuite) TestUseItem_NotConsumable() {
	s.create()
	s.mutate(func(p *entities.Profile) { p.AddItem("rusty_dagger", 1) })
	_, err := s.svc.UseItem(s.ctx, &profileorc.UseItemInput{UserID: testUserID, ItemID: "rusty_dagger"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ProfileOrchestratorTestSuite) TestHeal() {
	s.create()
	s.mutate(func(p *entities.Profile) { p.Health = 40 })

	out, err := s.svc.Heal(s.ctx, &profileorc.HealInput{UserID: testUserID})
	s.Require().NoError(err)
	s.Equal(60, out.Restored)
	s.Equal(profileorc.HealCost, out.Cost)
	s.Equal(100, out.Profile.Health)
	s.Equal(int64(50), out.Profile.Coins)
}

func (s *ProfileOrchestratorTestSuite) TestHeal_FullHealthRejected() {
	s.create()
	_, err := s.svc.Heal(s.ctx, &profileorc.HealInput{UserID: testUserID})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *ProfileOrchestratorTestSuite) TestHeal_InsufficientCoins() {
	s.create()
	s.mutate(func(p *entities.Profile) {
		p.Health = 10
		p.Coins = 20
	})

	_, err := s.svc.Heal(s.ctx, &profileorc.HealInput{UserID: testUserID})
	s.True(errors.IsInsufficientResource(err))
}

func TestProfileOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileOrchestratorTestSuite))
}
