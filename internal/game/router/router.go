// Package router provides game module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/danilkaz/pickup-queue/internal/game/handler"
)

// RegisterRoutes registers game module routes.
func RegisterRoutes(r *gin.Engine, svc handler.Service, pub handler.Publisher, logger *zap.SugaredLogger) {
	h := handler.New(svc, pub, logger)

	r.GET("/api/game/state", h.GetState)
	r.POST("/api/game/win", h.DeclareWin)
	r.POST("/api/game/draw", h.DeclareDraw)
	r.DELETE("/api/game/teams/:id", h.RemoveTeam)
	r.POST("/api/game/reset", h.Reset)
	r.GET("/api/game/teams", h.ListTeams)
}
