package api

import (
	"context"
	"fmt"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// validationError is a 400-class rejection with a client-facing message.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// validateItemWrite checks an item payload. Required fields are only enforced
// when required is true (POST); status and priority are checked whenever set.
// Priority is validated against the priorities table, so an item can never
// reference an urgency level that does not exist.
func (h *Handler) validateItemWrite(ctx context.Context, item *models.Item, required bool) error {
	if required {
		if item.Name == "" || item.RoomID == 0 {
			return &validationError{"Missing required fields: name and room_id are required"}
		}
	}

	if item.Status != "" && !models.IsValidItemStatus(item.Status) {
		return &validationError{"Invalid status. Must be one of: " + models.ItemStatusList()}
	}

	if item.Priority != "" {
		exists, err := h.store.PriorityExists(ctx, item.Priority)
		if err != nil {
			return fmt.Errorf("validate priority: %w", err)
		}
		if !exists {
			return &validationError{
				fmt.Sprintf("Invalid priority: %s. Must be one of the defined priorities.", item.Priority),
			}
		}
	}

	return nil
}

// validateLogisticsWrite checks a logistics payload. The priority field is
// free text here and deliberately not checked against the priorities table.
func validateLogisticsWrite(entry *models.LogisticsEntry, required bool) error {
	if required {
		if entry.ServiceType == "" {
			return &validationError{"Missing required field: service_type is required"}
		}
	}

	if entry.CompletionStatus != "" && !models.IsValidCompletionStatus(entry.CompletionStatus) {
		return &validationError{"Invalid completion_status. Must be one of: " + models.CompletionStatusList()}
	}

	return nil
}
