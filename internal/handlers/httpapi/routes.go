package httpapi

import (
	"github.com/labstack/echo/v4"

	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/orchestrators/adventure"
	"github.com/epicquest/rpg-engine/internal/orchestrators/battle"
	"github.com/epicquest/rpg-engine/internal/orchestrators/dungeon"
	"github.com/epicquest/rpg-engine/internal/orchestrators/economy"
	profileorc "github.com/epicquest/rpg-engine/internal/orchestrators/profile"
)

type createProfileRequest struct {
	UserID string `json:"user_id"`
}

type profileResponse struct {
	Profile   *entities.Profile   `json:"profile"`
	Effective *entities.Modifiers `json:"effective_stats,omitempty"`
}

func (h *Handler) createProfile(c echo.Context) error {
	const action = "profile.create"

	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.profiles.Create(c.Request().Context(), &profileorc.CreateInput{UserID: req.UserID})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, profileResponse{Profile: out.Profile})
}

func (h *Handler) getProfile(c echo.Context) error {
	const action = "profile.get"

	out, err := h.profiles.Get(c.Request().Context(), &profileorc.GetInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, profileResponse{Profile: out.Profile, Effective: &out.Effective})
}

type equipRequest struct {
	ItemID string `json:"item_id"`
	Swap   bool   `json:"swap"`
}

type equipResponse struct {
	Profile  *entities.Profile `json:"profile"`
	Slot     entities.Slot     `json:"slot"`
	Replaced string            `json:"replaced,omitempty"`
}

func (h *Handler) equip(c echo.Context) error {
	const action = "profile.equip"

	var req equipRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.profiles.Equip(c.Request().Context(), &profileorc.EquipInput{
		UserID: c.Param("id"),
		ItemID: req.ItemID,
		Swap:   req.Swap,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, equipResponse{Profile: out.Profile, Slot: out.Slot, Replaced: out.Replaced})
}

type unequipRequest struct {
	Slot entities.Slot `json:"slot"`
}

type unequipResponse struct {
	Profile *entities.Profile `json:"profile"`
	ItemID  string            `json:"item_id"`
}

func (h *Handler) unequip(c echo.Context) error {
	const action = "profile.unequip"

	var req unequipRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.profiles.Unequip(c.Request().Context(), &profileorc.UnequipInput{
		UserID: c.Param("id"),
		Slot:   req.Slot,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, unequipResponse{Profile: out.Profile, ItemID: out.ItemID})
}

type useItemRequest struct {
	ItemID string `json:"item_id"`
}

type useItemResponse struct {
	Profile  *entities.Profile `json:"profile"`
	Restored int               `json:"restored"`
}

func (h *Handler) useItem(c echo.Context) error {
	const action = "profile.use"

	var req useItemRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.profiles.UseItem(c.Request().Context(), &profileorc.UseItemInput{
		UserID: c.Param("id"),
		ItemID: req.ItemID,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, useItemResponse{Profile: out.Profile, Restored: out.Restored})
}

type healResponse struct {
	Profile  *entities.Profile `json:"profile"`
	Restored int               `json:"restored"`
	Cost     int64             `json:"cost"`
}

func (h *Handler) heal(c echo.Context) error {
	const action = "profile.heal"

	out, err := h.profiles.Heal(c.Request().Context(), &profileorc.HealInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, healResponse{Profile: out.Profile, Restored: out.Restored, Cost: out.Cost})
}

type battleRequest struct {
	MonsterID string `json:"monster_id,omitempty"`
	Location  string `json:"location,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
}

type battleResponse struct {
	Profile *entities.Profile           `json:"profile"`
	Monster *entities.MonsterDefinition `json:"monster"`
	Result  *combat.Result              `json:"result"`
	Rewards entities.RewardBundle       `json:"rewards"`
	LevelUp bool                        `json:"level_up"`
}

func (h *Handler) battle(c echo.Context) error {
	const action = "battle"

	var req battleRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.battles.Battle(c.Request().Context(), &battle.BattleInput{
		UserID:    c.Param("id"),
		MonsterID: req.MonsterID,
		Location:  req.Location,
		Seed:      req.Seed,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	h.metrics.RecordBattle(string(out.Result.Outcome))
	return h.respond(c, action, battleResponse{
		Profile: out.Profile,
		Monster: out.Monster,
		Result:  out.Result,
		Rewards: out.Rewards,
		LevelUp: out.LevelUp,
	})
}

type duelRequest struct {
	OpponentID string `json:"opponent_id"`
	Wager      int64  `json:"wager,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

type duelResponse struct {
	Profile  *entities.Profile `json:"profile"`
	Opponent *entities.Profile `json:"opponent"`
	Result   *combat.Result    `json:"result"`
	Wager    int64             `json:"wager"`
}

func (h *Handler) duel(c echo.Context) error {
	const action = "duel"

	var req duelRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.battles.Duel(c.Request().Context(), &battle.DuelInput{
		UserID:     c.Param("id"),
		OpponentID: req.OpponentID,
		Wager:      req.Wager,
		Seed:       req.Seed,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	h.metrics.RecordBattle(string(out.Result.Outcome))
	return h.respond(c, action, duelResponse{
		Profile:  out.Profile,
		Opponent: out.Opponent,
		Result:   out.Result,
		Wager:    out.Wager,
	})
}

type dungeonRunResponse struct {
	Profile *entities.Profile    `json:"profile"`
	Run     *entities.DungeonRun `json:"run"`
}

func (h *Handler) dungeonStart(c echo.Context) error {
	const action = "dungeon.start"

	out, err := h.dungeons.Start(c.Request().Context(), &dungeon.StartInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, dungeonRunResponse{Profile: out.Profile, Run: out.Run})
}

type dungeonAdvanceRequest struct {
	Seed int64 `json:"seed,omitempty"`
}

type dungeonAdvanceResponse struct {
	Profile   *entities.Profile           `json:"profile"`
	Run       *entities.DungeonRun        `json:"run,omitempty"`
	State     entities.RunState           `json:"state"`
	Floor     int                         `json:"floor"`
	Monster   *entities.MonsterDefinition `json:"monster"`
	Result    *combat.Result              `json:"result"`
	Rewards   entities.RewardBundle       `json:"rewards"`
	Committed entities.RewardBundle       `json:"committed"`
	LevelUp   bool                        `json:"level_up"`
}

func (h *Handler) dungeonAdvance(c echo.Context) error {
	const action = "dungeon.advance"

	var req dungeonAdvanceRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.dungeons.Advance(c.Request().Context(), &dungeon.AdvanceInput{
		UserID: c.Param("id"),
		Seed:   req.Seed,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	h.metrics.RecordBattle(string(out.Result.Outcome))
	return h.respond(c, action, dungeonAdvanceResponse{
		Profile:   out.Profile,
		Run:       out.Run,
		State:     out.State,
		Floor:     out.Floor,
		Monster:   out.Monster,
		Result:    out.Result,
		Rewards:   out.Rewards,
		Committed: out.Committed,
		LevelUp:   out.LevelUp,
	})
}

type dungeonAbandonResponse struct {
	Profile   *entities.Profile     `json:"profile"`
	Discarded entities.RewardBundle `json:"discarded"`
}

func (h *Handler) dungeonAbandon(c echo.Context) error {
	const action = "dungeon.abandon"

	out, err := h.dungeons.Abandon(c.Request().Context(), &dungeon.AbandonInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, dungeonAbandonResponse{Profile: out.Profile, Discarded: out.Discarded})
}

type dungeonStatusResponse struct {
	Run *entities.DungeonRun `json:"run"`
}

func (h *Handler) dungeonStatus(c echo.Context) error {
	const action = "dungeon.status"

	out, err := h.dungeons.Status(c.Request().Context(), &dungeon.StatusInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, dungeonStatusResponse{Run: out.Run})
}

type adventureRequest struct {
	Location string `json:"location"`
	Seed     int64  `json:"seed,omitempty"`
}

type adventureResponse struct {
	Profile  *entities.Profile     `json:"profile"`
	Location string                `json:"location"`
	Rewards  entities.RewardBundle `json:"rewards"`
	LevelUp  bool                  `json:"level_up"`
}

func (h *Handler) adventure(c echo.Context) error {
	const action = "adventure"

	var req adventureRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.adventures.Adventure(c.Request().Context(), &adventure.AdventureInput{
		UserID:   c.Param("id"),
		Location: req.Location,
		Seed:     req.Seed,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, adventureResponse{
		Profile:  out.Profile,
		Location: out.Location,
		Rewards:  out.Rewards,
		LevelUp:  out.LevelUp,
	})
}

type workRequest struct {
	Seed int64 `json:"seed,omitempty"`
}

type workResponse struct {
	Profile    *entities.Profile `json:"profile"`
	Job        string            `json:"job"`
	Coins      int64             `json:"coins"`
	Experience int64             `json:"experience"`
	LevelUp    bool              `json:"level_up"`
}

func (h *Handler) work(c echo.Context) error {
	const action = "work"

	var req workRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.adventures.Work(c.Request().Context(), &adventure.WorkInput{
		UserID: c.Param("id"),
		Seed:   req.Seed,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, workResponse{
		Profile:    out.Profile,
		Job:        out.Job.Name,
		Coins:      out.Coins,
		Experience: out.Experience,
		LevelUp:    out.LevelUp,
	})
}

type dailyResponse struct {
	Profile    *entities.Profile `json:"profile"`
	Coins      int64             `json:"coins"`
	Experience int64             `json:"experience"`
	Streak     int               `json:"streak"`
	LevelUp    bool              `json:"level_up"`
}

func (h *Handler) daily(c echo.Context) error {
	const action = "daily"

	out, err := h.adventures.Daily(c.Request().Context(), &adventure.DailyInput{UserID: c.Param("id")})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, dailyResponse{
		Profile:    out.Profile,
		Coins:      out.Coins,
		Experience: out.Experience,
		Streak:     out.Streak,
		LevelUp:    out.LevelUp,
	})
}

type buyRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity,omitempty"`
}

type buyResponse struct {
	Profile  *entities.Profile       `json:"profile"`
	Item     *entities.ItemDefinition `json:"item"`
	Quantity int                     `json:"quantity"`
	Cost     int64                   `json:"cost"`
}

func (h *Handler) buy(c echo.Context) error {
	const action = "shop.buy"

	var req buyRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.economy.Buy(c.Request().Context(), &economy.BuyInput{
		UserID:   c.Param("id"),
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, buyResponse{
		Profile:  out.Profile,
		Item:     out.Item,
		Quantity: out.Quantity,
		Cost:     out.Cost,
	})
}

type payRequest struct {
	ToID   string `json:"to_id"`
	Amount int64  `json:"amount"`
}

type payResponse struct {
	From *entities.Profile `json:"from"`
	To   *entities.Profile `json:"to"`
}

func (h *Handler) pay(c echo.Context) error {
	const action = "pay"

	var req payRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, action, errors.InvalidArgument("invalid request body"))
	}

	out, err := h.economy.Pay(c.Request().Context(), &economy.PayInput{
		UserID: c.Param("id"),
		ToID:   req.ToID,
		Amount: req.Amount,
	})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, payResponse{From: out.From, To: out.To})
}

type shopResponse struct {
	Items []*entities.ItemDefinition `json:"items"`
}

func (h *Handler) shop(c echo.Context) error {
	const action = "shop.list"

	out, err := h.economy.Shop(c.Request().Context(), &economy.ShopInput{})
	if err != nil {
		return h.fail(c, action, err)
	}
	return h.respond(c, action, shopResponse{Items: out.Items})
}
