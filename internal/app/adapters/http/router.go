package http

import (
	"discordstats/internal/app/adapters/http/handlers"
	"discordstats/internal/app/infrastructure/config"
	"discordstats/pkg/logger"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router   *gin.Engine
	handlers *handlers.Handlers

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager) *Router {
	r := &Router{
		router:   gin.Default(),
		handlers: handlers.New(log, manager),
		log:      log,
		manager:  manager,
	}
	cfg := manager.Get()

	if cfg.App.AuthToken != "" {
		accounts := gin.Accounts{"admin": cfg.App.AuthToken}

		pprofGroup := r.router.Group("/", gin.BasicAuth(accounts))
		pprof.Register(pprofGroup)

		r.router.GET("/metrics", gin.BasicAuth(accounts), gin.WrapH(promhttp.Handler()))
	}

	r.router.GET("/", r.handlers.IndexHandler)
	r.router.GET("/health", r.handlers.HealthHandler)
	return r
}

func (r *Router) Run() error {
	return r.router.Run(r.manager.Get().App.ListenAddr)
}
