// Package router provides player module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/danilkaz/pickup-queue/internal/player/handler"
)

// RegisterRoutes registers player module routes.
func RegisterRoutes(r *gin.Engine, svc handler.Service, pub handler.Publisher, logger *zap.SugaredLogger) {
	h := handler.New(svc, pub, logger)

	r.POST("/api/players", h.JoinSolo)
	r.DELETE("/api/players/:id", h.RemovePlayer)
}
