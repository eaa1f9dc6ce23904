// Package httpapi exposes the engine operations over HTTP/JSON. Handlers
// bind requests, call the orchestrators, and translate typed errors into
// status codes; no game logic lives here.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/metrics"
	"github.com/epicquest/rpg-engine/internal/orchestrators/adventure"
	"github.com/epicquest/rpg-engine/internal/orchestrators/battle"
	"github.com/epicquest/rpg-engine/internal/orchestrators/dungeon"
	"github.com/epicquest/rpg-engine/internal/orchestrators/economy"
	profileorc "github.com/epicquest/rpg-engine/internal/orchestrators/profile"
)

// Config holds the dependencies for the HTTP handler
type Config struct {
	Profiles   profileorc.Service
	Battles    battle.Service
	Dungeons   dungeon.Service
	Adventures adventure.Service
	Economy    economy.Service
	Metrics    *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Profiles == nil {
		vb.RequiredField("Profiles")
	}
	if c.Battles == nil {
		vb.RequiredField("Battles")
	}
	if c.Dungeons == nil {
		vb.RequiredField("Dungeons")
	}
	if c.Adventures == nil {
		vb.RequiredField("Adventures")
	}
	if c.Economy == nil {
		vb.RequiredField("Economy")
	}

	return vb.Build()
}

// Handler wires the engine services into echo routes.
type Handler struct {
	profiles   profileorc.Service
	battles    battle.Service
	dungeons   dungeon.Service
	adventures adventure.Service
	economy    economy.Service
	metrics    *metrics.Metrics
}

// NewHandler creates a new HTTP handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		profiles:   cfg.Profiles,
		battles:    cfg.Battles,
		dungeons:   cfg.Dungeons,
		adventures: cfg.Adventures,
		economy:    cfg.Economy,
		metrics:    cfg.Metrics,
	}, nil
}

// Register mounts all routes and middleware on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	e.GET("/health", h.health)
	e.GET("/metrics", metrics.EchoHandler())

	v1 := e.Group("/v1")
	v1.POST("/profiles", h.createProfile)

	p := v1.Group("/profiles/:id")
	p.GET("", h.getProfile)
	p.POST("/equip", h.equip)
	p.POST("/unequip", h.unequip)
	p.POST("/use", h.useItem)
	p.POST("/heal", h.heal)
	p.POST("/battle", h.battle)
	p.POST("/duel", h.duel)
	p.POST("/dungeon/start", h.dungeonStart)
	p.POST("/dungeon/advance", h.dungeonAdvance)
	p.POST("/dungeon/abandon", h.dungeonAbandon)
	p.GET("/dungeon", h.dungeonStatus)
	p.POST("/adventure", h.adventure)
	p.POST("/work", h.work)
	p.POST("/daily", h.daily)
	p.POST("/shop/buy", h.buy)
	p.POST("/pay", h.pay)

	v1.GET("/shop", h.shop)
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter string `json:"retry_after,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// respond records the command metric and writes the payload.
func (h *Handler) respond(c echo.Context, action string, payload interface{}) error {
	h.metrics.RecordCommand(action, "ok")
	return c.JSON(http.StatusOK, payload)
}

// fail translates a typed engine error into an HTTP response.
func (h *Handler) fail(c echo.Context, action string, err error) error {
	code := errors.GetCode(err)
	h.metrics.RecordCommand(action, string(code))

	body := errorBody{
		Code:    string(code),
		Message: errors.GetMessage(err),
	}
	if errors.IsCooldownActive(err) {
		body.RetryAfter = errors.CooldownRemaining(err).String()
	}
	if code == errors.CodeInternal || code == errors.CodeUnavailable {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"action", action,
			"error", err)
		// Internals never leak to clients.
		body.Message = "internal error"
	}

	return c.JSON(code.HTTPStatus(), errorResponse{Error: body})
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
