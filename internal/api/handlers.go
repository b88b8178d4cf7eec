package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nestready/nestready/backend/planner-service/internal/db"
	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// Store is the persistence surface the handlers depend on. *db.Database
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	Health(ctx context.Context) error

	ListItems(ctx context.Context, filter db.ItemFilter) ([]models.Item, error)
	GetItem(ctx context.Context, id int) (*models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error)
	DeleteItem(ctx context.Context, id int) error
	ItemStats(ctx context.Context) (*models.ItemStats, error)

	ListLogistics(ctx context.Context, filter db.LogisticsFilter) ([]models.LogisticsEntry, error)
	GetLogisticsEntry(ctx context.Context, id int) (*models.LogisticsEntry, error)
	CreateLogisticsEntry(ctx context.Context, entry models.LogisticsEntry) (*models.LogisticsEntry, error)
	UpdateLogisticsEntry(ctx context.Context, id int, entry models.LogisticsEntry) (*models.LogisticsEntry, error)
	DeleteLogisticsEntry(ctx context.Context, id int) error
	LogisticsStats(ctx context.Context) (*models.LogisticsStats, error)

	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room models.Room) (*models.Room, error)
	UpdateRoom(ctx context.Context, id int, room models.Room) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int) error

	ListPriorities(ctx context.Context) ([]models.PriorityLevel, error)
	PriorityExists(ctx context.Context, name string) (bool, error)

	GetSettings(ctx context.Context) (map[string]string, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

// Handler holds the store and provides HTTP handlers
type Handler struct {
	store Store
	log   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, log: logger}
}

// RegisterRoutes mounts every endpoint on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		items := api.Group("/items")
		{
			items.GET("", h.ListItems)
			items.GET("/stats", h.ItemStats)
			items.POST("", h.CreateItem)
			items.GET("/:id", h.GetItem)
			items.PUT("/:id", h.UpdateItem)
			items.DELETE("/:id", h.DeleteItem)
		}

		logistics := api.Group("/logistics")
		{
			logistics.GET("", h.ListLogistics)
			logistics.GET("/stats", h.LogisticsStats)
			logistics.POST("", h.CreateLogisticsEntry)
			logistics.GET("/:id", h.GetLogisticsEntry)
			logistics.PUT("/:id", h.UpdateLogisticsEntry)
			logistics.DELETE("/:id", h.DeleteLogisticsEntry)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", h.ListRooms)
			rooms.POST("", h.CreateRoom)
			rooms.PUT("/:id", h.UpdateRoom)
			rooms.DELETE("/:id", h.DeleteRoom)
		}

		api.GET("/priorities", h.ListPriorities)
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings/:key", h.UpdateSetting)
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		h.log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Home setup planner API is running",
	})
}
