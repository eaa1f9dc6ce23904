// Package profile implements the profile orchestrator: creation, views,
// equipment management, consumables, and the paid heal.
package profile

import (
	"context"
	"log/slog"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

//go:generate mockgen -destination=mock/mock_service.go -package=profileorcmock github.com/epicquest/rpg-engine/internal/orchestrators/profile Service

const (
	// HealCost is the flat coin price of restoring health to max.
	HealCost int64 = 50

	// Starting profile values
	startingLevel     = 1
	startingMaxHealth = 100
	startingAttack    = 10
	startingDefense   = 5
	startingSpeed     = 5
	startingCoins     = 100
)

// Service defines the profile operations
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)
	Heal(ctx context.Context, input *HealInput) (*HealOutput, error)
}

// Config holds the dependencies for the profile orchestrator
type Config struct {
	ProfileRepo    profilerepo.Repository
	Catalog        *catalog.Catalog
	UpdateAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     profilerepo.Repository
	catalog  *catalog.Catalog
	attempts int
}

// NewOrchestrator creates a new profile orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	attempts := cfg.UpdateAttempts
	if attempts < 1 {
		attempts = profilerepo.DefaultUpdateAttempts
	}

	return &orchestrator{
		repo:     cfg.ProfileRepo,
		catalog:  cfg.Catalog,
		attempts: attempts,
	}, nil
}

// NewProfile returns the starting record for a user.
func NewProfile(userID string) *entities.Profile {
	return &entities.Profile{
		ID:        userID,
		Level:     startingLevel,
		Attack:    startingAttack,
		Defense:   startingDefense,
		Speed:     startingSpeed,
		MaxHealth: startingMaxHealth,
		Health:    startingMaxHealth,
		Coins:     startingCoins,
	}
}

// EffectiveStats returns the profile's stat totals with every equipped
// item's modifiers applied. Unknown equipped item ids are skipped; the
// catalog is closed so they cannot occur through engine calls.
func EffectiveStats(cat *catalog.Catalog, p *entities.Profile) entities.Modifiers {
	total := entities.Modifiers{
		Attack:    p.Attack,
		Defense:   p.Defense,
		Speed:     p.Speed,
		MaxHealth: p.MaxHealth,
	}
	for _, itemID := range p.Equipped {
		def, err := cat.Define(itemID)
		if err != nil {
			continue
		}
		total = total.Add(def.Modifiers)
	}
	return total
}

func (o *orchestrator) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	out, err := o.repo.Create(ctx, profilerepo.CreateInput{Profile: NewProfile(input.UserID)})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "profile started", "profile_id", input.UserID)
	return &CreateOutput{Profile: out.Profile}, nil
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	out, err := o.repo.Get(ctx, profilerepo.GetInput{ID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &GetOutput{
		Profile:   out.Profile,
		Effective: EffectiveStats(o.catalog, out.Profile),
	}, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil || input.UserID == "" || input.ItemID == "" {
		return nil, errors.InvalidArgument("user id and item id are required")
	}

	def, err := o.catalog.Define(input.ItemID)
	if err != nil {
		return nil, err
	}
	if !entities.ValidEquipSlot(def.Slot) {
		return nil, errors.InvalidArgumentf("item %s is not equippable", input.ItemID)
	}

	var replaced string
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.ItemCount(input.ItemID) < 1 {
			return errors.NotFoundf("item %s is not in inventory", input.ItemID)
		}
		occupied := p.EquippedItem(def.Slot)
		if occupied != "" && occupied != input.ItemID && !input.Swap {
			return errors.AlreadyExistsf("slot %s already holds %s", string(def.Slot), occupied)
		}

		// Equipping consumes one unit; a displaced item goes back.
		p.RemoveItem(input.ItemID, 1)
		replaced = occupied
		if replaced != "" {
			p.AddItem(replaced, 1)
		}
		if p.Equipped == nil {
			p.Equipped = make(map[entities.Slot]string)
		}
		p.Equipped[def.Slot] = input.ItemID
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "equipped item",
		"profile_id", input.UserID,
		"item_id", input.ItemID,
		"slot", string(def.Slot))

	return &EquipOutput{Profile: updated, Slot: def.Slot, Replaced: replaced}, nil
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}
	if !entities.ValidEquipSlot(input.Slot) {
		return nil, errors.InvalidArgumentf("unknown slot %q", string(input.Slot))
	}

	var returned string
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		returned = p.EquippedItem(input.Slot)
		if returned == "" {
			return errors.FailedPreconditionf("slot %s is empty", string(input.Slot))
		}
		delete(p.Equipped, input.Slot)
		p.AddItem(returned, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UnequipOutput{Profile: updated, ItemID: returned}, nil
}

func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil || input.UserID == "" || input.ItemID == "" {
		return nil, errors.InvalidArgument("user id and item id are required")
	}

	def, err := o.catalog.Define(input.ItemID)
	if err != nil {
		return nil, err
	}
	if !def.Consumable() {
		return nil, errors.InvalidArgumentf("item %s cannot be consumed", input.ItemID)
	}

	var restored int
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if !p.RemoveItem(input.ItemID, 1) {
			return errors.NotFoundf("item %s is not in inventory", input.ItemID)
		}
		if p.Health >= p.MaxHealth {
			return errors.FailedPrecondition("health is already full")
		}
		restored = def.Heal
		if p.Health+restored > p.MaxHealth {
			restored = p.MaxHealth - p.Health
		}
		p.Health += restored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UseItemOutput{Profile: updated, Restored: restored}, nil
}

func (o *orchestrator) Heal(ctx context.Context, input *HealInput) (*HealOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	var restored int
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Health >= p.MaxHealth {
			return errors.FailedPrecondition("health is already full")
		}
		if p.Coins < HealCost {
			return errors.InsufficientResourcef("healing costs %d coins, have %d", HealCost, p.Coins)
		}
		p.Coins -= HealCost
		restored = p.MaxHealth - p.Health
		p.Health = p.MaxHealth
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &HealOutput{Profile: updated, Restored: restored, Cost: HealCost}, nil
}
