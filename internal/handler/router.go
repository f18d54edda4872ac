package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"equipsched/internal/domain/user"
	"equipsched/internal/handler/api"
	"equipsched/internal/handler/middleware"
	"equipsched/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	scheduleHandler *api.ScheduleHandler,
	equipmentHandler *api.EquipmentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, authHandler, scheduleHandler, equipmentHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.RateLimiter(cfg.Rate))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	scheduleHandler *api.ScheduleHandler,
	equipmentHandler *api.EquipmentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Availability and statistics are the hot read paths of the scheduling
	// form; both tolerate a short staleness window.
	readCache := cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	cached := middleware.Cache(readCache, cfg.Cache.TTL)

	apiGroup := engine.Group("/api/v1")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		viewSchedules := authMiddleware.RequireCapability(user.ActionViewSchedules)
		manageSchedules := authMiddleware.RequireCapability(user.ActionManageSchedules)
		viewEquipment := authMiddleware.RequireCapability(user.ActionViewEquipment)
		manageEquipment := authMiddleware.RequireCapability(user.ActionManageEquipment)

		schedules := apiGroup.Group("/schedules")
		schedules.Use(authMiddleware.RequireAuth())
		{
			addRoutes(schedules, []route{
				{Method: http.MethodGet, Path: "", Handler: scheduleHandler.ListSchedules, Mw: []gin.HandlerFunc{viewSchedules}},
				{Method: http.MethodPost, Path: "", Handler: scheduleHandler.CreateSchedule, Mw: []gin.HandlerFunc{manageSchedules}},
				{Method: http.MethodGet, Path: "/conflicts/check", Handler: scheduleHandler.CheckConflicts, Mw: []gin.HandlerFunc{viewSchedules}},
				{Method: http.MethodGet, Path: "/:id", Handler: scheduleHandler.GetSchedule, Mw: []gin.HandlerFunc{viewSchedules}},
				{Method: http.MethodPut, Path: "/:id", Handler: scheduleHandler.UpdateSchedule, Mw: []gin.HandlerFunc{manageSchedules}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: scheduleHandler.UpdateScheduleStatus, Mw: []gin.HandlerFunc{manageSchedules}},
				{Method: http.MethodDelete, Path: "/:id", Handler: scheduleHandler.CancelSchedule, Mw: []gin.HandlerFunc{manageSchedules}},
			})
		}

		equipment := apiGroup.Group("/equipment")
		equipment.Use(authMiddleware.RequireAuth())
		{
			addRoutes(equipment, []route{
				{Method: http.MethodGet, Path: "", Handler: equipmentHandler.ListEquipment, Mw: []gin.HandlerFunc{viewEquipment}},
				{Method: http.MethodPost, Path: "", Handler: equipmentHandler.CreateEquipment, Mw: []gin.HandlerFunc{manageEquipment}},
				{Method: http.MethodGet, Path: "/:id", Handler: equipmentHandler.GetEquipment, Mw: []gin.HandlerFunc{viewEquipment}},
				{Method: http.MethodPut, Path: "/:id", Handler: equipmentHandler.UpdateEquipment, Mw: []gin.HandlerFunc{manageEquipment}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: equipmentHandler.UpdateEquipmentStatus, Mw: []gin.HandlerFunc{manageEquipment}},
				{Method: http.MethodDelete, Path: "/:id", Handler: equipmentHandler.DeactivateEquipment, Mw: []gin.HandlerFunc{manageEquipment}},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: equipmentHandler.GetAvailability, Mw: []gin.HandlerFunc{viewEquipment, cached}},
				{Method: http.MethodGet, Path: "/:id/statistics", Handler: equipmentHandler.GetStatistics, Mw: []gin.HandlerFunc{viewEquipment, cached}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		// Register per-route middleware in gin's own chain so c.Next()
		// reaches the handler; the cache middleware depends on that to see
		// the response it is about to store.
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, handlers...)
		case http.MethodPost:
			g.POST(r.Path, handlers...)
		case http.MethodPut:
			g.PUT(r.Path, handlers...)
		case http.MethodPatch:
			g.PATCH(r.Path, handlers...)
		case http.MethodDelete:
			g.DELETE(r.Path, handlers...)
		default:
			g.Any(r.Path, handlers...)
		}
	}
}
