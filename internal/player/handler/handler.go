// Package handler provides HTTP handlers for player endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	playerModel "github.com/danilkaz/pickup-queue/internal/player/model"
	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	rosterModel "github.com/danilkaz/pickup-queue/internal/roster/model"
)

// Service is the slice of the roster engine the player endpoints use.
type Service interface {
	JoinSolo(ctx context.Context, nickname string) (*engine.SoloResult, error)
	RemovePlayer(ctx context.Context, id uint) (*engine.RemovePlayerResult, error)
}

// Publisher pushes the fresh game state to connected observers.
type Publisher interface {
	Publish(ctx context.Context)
}

// Handler handles HTTP requests for player endpoints.
type Handler struct {
	service   Service
	publisher Publisher
	logger    *zap.SugaredLogger
}

// New creates a new player handler instance.
func New(svc Service, pub Publisher, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, publisher: pub, logger: logger}
}

// JoinSolo handles POST /api/players. The player is assigned to the oldest
// team that still has room, or a brand new one.
func (h *Handler) JoinSolo(c *gin.Context) {
	var req playerModel.JoinSoloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "nickname is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.JoinSolo(c.Request.Context(), req.Nickname)
	if err != nil {
		if errors.Is(err, rosterModel.ErrInvalidNickname) {
			errorResponse(c, "INVALID_REQUEST", "nickname must be 1-20 characters", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error joining solo", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusCreated, resp)
}

// RemovePlayer handles DELETE /api/players/:id. Removing the last player of
// a team removes the team as well and closes any queue gap it leaves.
func (h *Handler) RemovePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "player id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.RemovePlayer(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, rosterModel.ErrPlayerNotFound) {
			notFoundResponse(c, "player not found")
			return
		}
		h.logger.Errorw("error removing player", "player_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.publisher.Publish(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}
