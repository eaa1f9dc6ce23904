package economy

import (
	"github.com/epicquest/rpg-engine/internal/entities"
)

// BuyInput is the input for a shop purchase
type BuyInput struct {
	UserID   string
	ItemID   string
	Quantity int
}

// BuyOutput reports the purchase and the total charged
type BuyOutput struct {
	Profile  *entities.Profile
	Item     *entities.ItemDefinition
	Quantity int
	Cost     int64
}

// PayInput is the input for a coin transfer between profiles
type PayInput struct {
	UserID string
	ToID   string
	Amount int64
}

// PayOutput carries both sides after the transfer
type PayOutput struct {
	From *entities.Profile
	To   *entities.Profile
}

// ShopInput is the input for listing the shop inventory
type ShopInput struct{}

// ShopOutput lists every purchasable item
type ShopOutput struct {
	Items []*entities.ItemDefinition
}
