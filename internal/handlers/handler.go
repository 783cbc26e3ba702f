package handlers

import (
	"datahub_sim/internal/logger"
	"datahub_sim/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket replay of a stored run (HTTP upgrade, same port)
	router.GET("/ws/runs/:id", h.wsReplayRun)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSimulationRoutes(api)
		h.registerSeriesRoutes(api)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sims := api.Group("/simulations")
	{
		// Body example: {"scheduler":"smart","jobs":[{"name":"AI Training","power_kw":3,"duration_min":120,"priority":"high"}]}
		sims.POST("/run", h.runSimulation)
		sims.POST("/run/csv", h.runSimulationCSV)
		sims.POST("/compare", h.compareSchedulers)
		sims.GET("/", h.listRuns)
		sims.GET("/:id", h.getRun)
	}
}

func (h *Handler) registerSeriesRoutes(api *gin.RouterGroup) {
	series := api.Group("/series")
	{
		series.GET("/", h.seriesStatus)
		series.POST("/:kind", h.uploadSeries)
		series.DELETE("/:kind", h.deleteSeries)
	}
}
