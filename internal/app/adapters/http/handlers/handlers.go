package handlers

import (
	"net/http"

	"discordstats/internal/app/infrastructure/config"
	"discordstats/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	log     logger.Logger
	manager *config.Manager
}

func New(log logger.Logger, manager *config.Manager) *Handlers {
	return &Handlers{
		log:     log,
		manager: manager,
	}
}

func (h *Handlers) IndexHandler(c *gin.Context) {
	c.String(http.StatusOK, "Discord Stats Tracker is running.")
}

func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
