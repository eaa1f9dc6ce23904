package dungeon

import (
	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/entities"
)

// StartInput is the input for starting a dungeon run
type StartInput struct {
	UserID string
}

// StartOutput is the output for starting a dungeon run
type StartOutput struct {
	Profile *entities.Profile
	Run     *entities.DungeonRun
}

// AdvanceInput is the input for fighting the current floor. Seed pins the
// simulation; zero means derive one.
type AdvanceInput struct {
	UserID string
	Seed   int64
}

// AdvanceOutput reports one floor fight. Run is nil once the run reached a
// terminal state; Committed carries the rewards granted on completion and
// is empty otherwise.
type AdvanceOutput struct {
	Profile   *entities.Profile
	Run       *entities.DungeonRun
	State     entities.RunState
	Floor     int
	Monster   *entities.MonsterDefinition
	Result    *combat.Result
	Rewards   entities.RewardBundle
	Committed entities.RewardBundle
	LevelUp   bool
}

// AbandonInput is the input for abandoning a run
type AbandonInput struct {
	UserID string
}

// AbandonOutput reports the rewards forfeited by abandoning
type AbandonOutput struct {
	Profile   *entities.Profile
	Discarded entities.RewardBundle
}

// StatusInput is the input for inspecting the active run
type StatusInput struct {
	UserID string
}

// StatusOutput carries the active run, nil when idle
type StatusOutput struct {
	Run *entities.DungeonRun
}
