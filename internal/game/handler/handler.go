// Package handler provides HTTP handlers for game endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gameModel "github.com/danilkaz/pickup-queue/internal/game/model"
	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	rosterModel "github.com/danilkaz/pickup-queue/internal/roster/model"
)

// Service is the slice of the roster engine the game endpoints use.
type Service interface {
	Project(ctx context.Context) (*engine.GameState, error)
	DeclareWin(ctx context.Context, winnerSlot int) (*engine.WinResult, error)
	DeclareDraw(ctx context.Context) (*engine.DrawResult, error)
	RemoveTeam(ctx context.Context, id uint) error
	Reset(ctx context.Context) error
}

// Publisher pushes the fresh game state to connected observers.
type Publisher interface {
	Publish(ctx context.Context)
}

// Handler handles HTTP requests for game endpoints.
type Handler struct {
	service   Service
	publisher Publisher
	logger    *zap.SugaredLogger
}

// New creates a new game handler instance.
func New(svc Service, pub Publisher, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, publisher: pub, logger: logger}
}

// GetState handles GET /api/game/state.
func (h *Handler) GetState(c *gin.Context) {
	state, err := h.service.Project(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error projecting game state", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, state)
}

// DeclareWin handles POST /api/game/win. The winner stays on the field,
// the loser goes to the back of the queue.
func (h *Handler) DeclareWin(c *gin.Context) {
	var req gameModel.WinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "winnerSlot is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.DeclareWin(c.Request.Context(), req.WinnerSlot)
	if err != nil {
		switch {
		case errors.Is(err, rosterModel.ErrInvalidSlot):
			errorResponse(c, "INVALID_REQUEST", "winnerSlot must be 1 or 2", http.StatusBadRequest)
		case errors.Is(err, rosterModel.ErrNotEnoughTeams):
			errorResponse(c, "NOT_ENOUGH_TEAMS", "two teams must be on the field", http.StatusBadRequest)
		default:
			h.logger.Errorw("error declaring win", "winner_slot", req.WinnerSlot, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// DeclareDraw handles POST /api/game/draw. Both teams leave the field when
// enough teams are queued to replace them.
func (h *Handler) DeclareDraw(c *gin.Context) {
	resp, err := h.service.DeclareDraw(c.Request.Context())
	if err != nil {
		if errors.Is(err, rosterModel.ErrNotEnoughTeams) {
			errorResponse(c, "NOT_ENOUGH_TEAMS", "two teams must be on the field", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error declaring draw", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// RemoveTeam handles DELETE /api/game/teams/:id.
func (h *Handler) RemoveTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "team id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveTeam(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, rosterModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error removing team", "team_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusOK, map[string]string{"message": "team removed"})
}

// Reset handles POST /api/game/reset. Everything goes: players, groups,
// teams, the queue.
func (h *Handler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		h.logger.Errorw("error resetting game", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusOK, map[string]string{"message": "game reset"})
}

// ListTeams handles GET /api/game/teams, returning every team regardless of
// state for the organizer view.
func (h *Handler) ListTeams(c *gin.Context) {
	state, err := h.service.Project(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	teams := make([]rosterModel.Team, 0, len(state.OnField)+len(state.Queued)+len(state.Forming))
	teams = append(teams, state.OnField...)
	teams = append(teams, state.Queued...)
	teams = append(teams, state.Forming...)

	c.JSON(http.StatusOK, map[string]interface{}{
		"teams": teams,
	})
}
