package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nestready/nestready/backend/planner-service/internal/db"
	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// ListItems handles GET /api/items with optional room_id, category, status,
// priority and search filters.
func (h *Handler) ListItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := db.ItemFilter{
		RoomID:   c.Query("room_id"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}

	items, err := h.store.ListItems(ctx, filter)
	if err != nil {
		h.log.Error("failed to fetch items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	c.JSON(http.StatusOK, items)
}

// ItemStats handles GET /api/items/stats
func (h *Handler) ItemStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.store.ItemStats(ctx)
	if err != nil {
		h.log.Error("failed to fetch item stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetItem handles GET /api/items/:id
func (h *Handler) GetItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	item, err := h.store.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.log.Error("failed to fetch item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /api/items
func (h *Handler) CreateItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validateItemWrite(ctx, &item, true); err != nil {
		h.rejectInvalid(c, err)
		return
	}
	applyItemDefaults(&item)

	created, err := h.store.CreateItem(ctx, item)
	if err != nil {
		h.log.Error("failed to create item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateItem handles PUT /api/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validateItemWrite(ctx, &item, false); err != nil {
		h.rejectInvalid(c, err)
		return
	}

	updated, err := h.store.UpdateItem(ctx, id, item)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.log.Error("failed to update item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	if err := h.store.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.log.Error("failed to delete item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// applyItemDefaults fills the status and priority columns when the payload
// leaves them empty. The default priority value predates the priorities table
// and does not match any seeded level.
func applyItemDefaults(item *models.Item) {
	if item.Status == "" {
		item.Status = string(models.ItemStatusNeeded)
	}
	if item.Priority == "" {
		item.Priority = models.DefaultItemPriority
	}
}

// rejectInvalid writes a 400 for validation failures and a 500 for errors
// encountered while validating.
func (h *Handler) rejectInvalid(c *gin.Context, err error) {
	var vErr *validationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	h.log.Error("validation query failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during validation"})
}
