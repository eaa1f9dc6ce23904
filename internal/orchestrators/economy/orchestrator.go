// Package economy implements the coin-flow operations: shop purchases and
// transfers between profiles. A transfer is two versioned writes; the debit
// is reversed when the credit cannot land.
package economy

import (
	"context"
	"log/slog"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

//go:generate mockgen -destination=mock/mock_service.go -package=economymock github.com/epicquest/rpg-engine/internal/orchestrators/economy Service

// Service defines the economy operations
type Service interface {
	Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error)
	Pay(ctx context.Context, input *PayInput) (*PayOutput, error)
	Shop(ctx context.Context, input *ShopInput) (*ShopOutput, error)
}

// Config holds the dependencies for the economy orchestrator
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

// NewOrchestrator creates a new economy orchestrator with the provided dependencies
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

func (o *orchestrator) Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error) {
	if input == nil || input.UserID == "" || input.ItemID == "" {
		return nil, errors.InvalidArgument("user id and item id are required")
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, errors.InvalidArgumentf("quantity must be positive, got %d", qty)
	}

	def, err := o.catalog.Define(input.ItemID)
	if err != nil {
		return nil, err
	}
	cost := def.Price * int64(qty)

	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Coins < cost {
			return errors.InsufficientResourcef("%s costs %d coins, have %d", def.Name, cost, p.Coins)
		}
		p.Coins -= cost
		p.AddItem(def.ID, qty)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "shop purchase",
		"profile_id", input.UserID,
		"item_id", def.ID,
		"quantity", qty,
		"cost", cost)

	return &BuyOutput{Profile: updated, Item: def, Quantity: qty, Cost: cost}, nil
}

func (o *orchestrator) Pay(ctx context.Context, input *PayInput) (*PayOutput, error) {
	if input == nil || input.UserID == "" || input.ToID == "" {
		return nil, errors.InvalidArgument("both profile ids are required")
	}
	if input.UserID == input.ToID {
		return nil, errors.InvalidArgument("cannot pay yourself")
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgumentf("amount must be positive, got %d", input.Amount)
	}

	// The receiver must exist before anything is debited.
	if _, err := o.repo.Get(ctx, profilerepo.GetInput{ID: input.ToID}); err != nil {
		return nil, err
	}

	from, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Coins < input.Amount {
			return errors.InsufficientResourcef("cannot pay %d coins, have %d", input.Amount, p.Coins)
		}
		p.Coins -= input.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	to, err := profilerepo.Apply(ctx, o.repo, input.ToID, o.attempts, func(p *entities.Profile) error {
		p.Coins += input.Amount
		return nil
	})
	if err != nil {
		// Return the debited coins; the transfer never happened.
		if _, rbErr := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
			p.Coins += input.Amount
			return nil
		}); rbErr != nil {
			slog.ErrorContext(ctx, "failed to refund aborted transfer",
				"profile_id", input.UserID,
				"amount", input.Amount,
				"error", rbErr)
			return nil, errors.WrapWithCode(rbErr, errors.CodeInternal, "transfer aborted and refund failed")
		}
		return nil, err
	}

	slog.InfoContext(ctx, "coins transferred",
		"from", input.UserID,
		"to", input.ToID,
		"amount", input.Amount)

	return &PayOutput{From: from, To: to}, nil
}

func (o *orchestrator) Shop(ctx context.Context, input *ShopInput) (*ShopOutput, error) {
	return &ShopOutput{Items: o.catalog.Items()}, nil
}
