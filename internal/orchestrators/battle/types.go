package battle

import (
	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/entities"
)

// BattleInput is the input for fighting a monster. MonsterID picks a
// specific monster; Location draws a random one there. Exactly one of the
// two must be set. Seed pins the simulation for callers that need
// reproducibility; zero means derive one.
type BattleInput struct {
	UserID    string
	MonsterID string
	Location  string
	Seed      int64
}

// BattleOutput is the result of a monster battle
type BattleOutput struct {
	Profile *entities.Profile
	Monster *entities.MonsterDefinition
	Result  *combat.Result
	Rewards entities.RewardBundle
	LevelUp bool
}

// DuelInput is the input for a profile-versus-profile battle. The wager is
// taken from the loser and granted to the winner; a draw moves nothing.
type DuelInput struct {
	UserID     string
	OpponentID string
	Wager      int64
	Seed       int64
}

// DuelOutput is the result of a duel
type DuelOutput struct {
	Profile  *entities.Profile
	Opponent *entities.Profile
	Result   *combat.Result
	Wager    int64
}
