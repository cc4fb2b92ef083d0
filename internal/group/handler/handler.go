// Package handler provides HTTP handlers for group endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	groupModel "github.com/danilkaz/pickup-queue/internal/group/model"
	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	rosterModel "github.com/danilkaz/pickup-queue/internal/roster/model"
)

// Service is the slice of the roster engine the group endpoints use.
type Service interface {
	CreateGroup(ctx context.Context) (*rosterModel.Group, error)
	GroupStatus(ctx context.Context, code string) (*engine.GroupStatus, error)
	JoinGroup(ctx context.Context, code, nickname string) (*engine.GroupJoinResult, error)
}

// Publisher pushes the fresh game state to connected observers.
type Publisher interface {
	Publish(ctx context.Context)
}

// Handler handles HTTP requests for group endpoints.
type Handler struct {
	service   Service
	publisher Publisher
	logger    *zap.SugaredLogger
}

// New creates a new group handler instance.
func New(svc Service, pub Publisher, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, publisher: pub, logger: logger}
}

// CreateGroup handles POST /api/groups.
func (h *Handler) CreateGroup(c *gin.Context) {
	group, err := h.service.CreateGroup(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error creating group", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"code":    group.Code,
		"message": "share this code with your friends",
	})
}

// GetGroup handles GET /api/groups/:code. Codes are case-insensitive on
// input and stored uppercase.
func (h *Handler) GetGroup(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	resp, err := h.service.GroupStatus(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, rosterModel.ErrGroupNotFound) {
			notFoundResponse(c, "group not found")
			return
		}
		h.logger.Errorw("error getting group", "code", code, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// JoinGroup handles POST /api/groups/:code/join. The seventh member closes
// the group and forms a team in the queue.
func (h *Handler) JoinGroup(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var req groupModel.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "nickname is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.JoinGroup(c.Request.Context(), code, req.Nickname)
	if err != nil {
		switch {
		case errors.Is(err, rosterModel.ErrGroupNotFound):
			notFoundResponse(c, "group not found")
		case errors.Is(err, rosterModel.ErrGroupComplete):
			errorResponse(c, "GROUP_COMPLETE", "group already formed a team", http.StatusBadRequest)
		case errors.Is(err, rosterModel.ErrGroupFull):
			errorResponse(c, "GROUP_FULL", "group already has 7 pending players", http.StatusBadRequest)
		case errors.Is(err, rosterModel.ErrInvalidNickname):
			errorResponse(c, "INVALID_REQUEST", "nickname must be 1-20 characters", http.StatusBadRequest)
		default:
			h.logger.Errorw("error joining group", "code", code, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	if resp.Assignment != nil {
		h.publisher.Publish(c.Request.Context())
	}
	c.JSON(http.StatusCreated, resp)
}
