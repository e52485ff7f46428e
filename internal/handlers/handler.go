package handlers

import (
	"aquaponics/internal/logger"
	"aquaponics/internal/service"

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

	// Login is the only unauthenticated data endpoint
	router.POST("/login", h.login)

	// Device-scoped reads (bearer token required)
	h.registerReadRoutes(router)

	// Live readings feed (HTTP upgrade) — same port
	router.GET("/ws", h.deviceTokenMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerReadRoutes(r *gin.Engine) {
	reads := r.Group("/", h.deviceTokenMiddleware)
	{
		reads.GET("/humidity", h.getHumidity)
		reads.GET("/lightlevel", h.getLightLevel)
		reads.GET("/waterlevel", h.getWaterLevel)
		reads.GET("/lightswitches", h.getLightSwitches)
		reads.GET("/user/device", h.getUserDevice)

		data := reads.Group("/data")
		{
			data.GET("/humidity", h.getHumidityHistory)
			data.GET("/light", h.getLightHistory)
		}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
