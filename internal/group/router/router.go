// Package router provides group module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/danilkaz/pickup-queue/internal/group/handler"
)

// RegisterRoutes registers group module routes.
func RegisterRoutes(r *gin.Engine, svc handler.Service, pub handler.Publisher, logger *zap.SugaredLogger) {
	h := handler.New(svc, pub, logger)

	r.POST("/api/groups", h.CreateGroup)
	r.GET("/api/groups/:code", h.GetGroup)
	r.POST("/api/groups/:code/join", h.JoinGroup)
}
