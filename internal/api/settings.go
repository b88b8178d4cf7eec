package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// GetSettings handles GET /api/settings, returning a flat key/value map.
func (h *Handler) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.store.GetSettings(ctx)
	if err != nil {
		h.log.Error("failed to fetch settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type settingPayload struct {
	Value string `json:"value"`
}

// UpdateSetting handles PUT /api/settings/:key as an upsert. The response
// echoes the key and value back.
func (h *Handler) UpdateSetting(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	key := c.Param("key")

	var payload settingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.store.UpsertSetting(ctx, key, payload.Value); err != nil {
		h.log.Error("failed to update setting", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": payload.Value})
}

// ListPriorities handles GET /api/priorities
func (h *Handler) ListPriorities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	priorities, err := h.store.ListPriorities(ctx)
	if err != nil {
		h.log.Error("failed to fetch priorities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch priorities"})
		return
	}
	if priorities == nil {
		priorities = []models.PriorityLevel{}
	}

	c.JSON(http.StatusOK, priorities)
}
