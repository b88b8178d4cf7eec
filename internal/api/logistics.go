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

// ListLogistics handles GET /api/logistics with optional service_type and
// completion_status filters.
func (h *Handler) ListLogistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := db.LogisticsFilter{
		ServiceType:      c.Query("service_type"),
		CompletionStatus: c.Query("completion_status"),
	}

	entries, err := h.store.ListLogistics(ctx, filter)
	if err != nil {
		h.log.Error("failed to fetch logistics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logistics"})
		return
	}
	if entries == nil {
		entries = []models.LogisticsEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// LogisticsStats handles GET /api/logistics/stats
func (h *Handler) LogisticsStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.store.LogisticsStats(ctx)
	if err != nil {
		h.log.Error("failed to fetch logistics stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLogisticsEntry handles GET /api/logistics/:id
func (h *Handler) GetLogisticsEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid logistics entry id"})
		return
	}

	entry, err := h.store.GetLogisticsEntry(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Logistics entry not found"})
			return
		}
		h.log.Error("failed to fetch logistics entry", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logistics entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CreateLogisticsEntry handles POST /api/logistics
func (h *Handler) CreateLogisticsEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var entry models.LogisticsEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := validateLogisticsWrite(&entry, true); err != nil {
		h.rejectInvalid(c, err)
		return
	}
	applyLogisticsDefaults(&entry)

	created, err := h.store.CreateLogisticsEntry(ctx, entry)
	if err != nil {
		h.log.Error("failed to create logistics entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create logistics entry"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateLogisticsEntry handles PUT /api/logistics/:id
func (h *Handler) UpdateLogisticsEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid logistics entry id"})
		return
	}

	var entry models.LogisticsEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := validateLogisticsWrite(&entry, false); err != nil {
		h.rejectInvalid(c, err)
		return
	}

	updated, err := h.store.UpdateLogisticsEntry(ctx, id, entry)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Logistics entry not found"})
			return
		}
		h.log.Error("failed to update logistics entry", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update logistics entry"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteLogisticsEntry handles DELETE /api/logistics/:id
func (h *Handler) DeleteLogisticsEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid logistics entry id"})
		return
	}

	if err := h.store.DeleteLogisticsEntry(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Logistics entry not found"})
			return
		}
		h.log.Error("failed to delete logistics entry", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete logistics entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logistics entry deleted successfully"})
}

func applyLogisticsDefaults(entry *models.LogisticsEntry) {
	if entry.CompletionStatus == "" {
		entry.CompletionStatus = string(models.CompletionStatusPending)
	}
	if entry.Priority == "" {
		entry.Priority = models.DefaultLogisticsPriority
	}
}
