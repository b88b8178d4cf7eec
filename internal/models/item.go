package models

import (
	"strings"
	"time"
)

// ItemStatus represents the purchase lifecycle of a furnishing item
type ItemStatus string

const (
	ItemStatusNeeded          ItemStatus = "Needed"
	ItemStatusResearching     ItemStatus = "Researching"
	ItemStatusReadyToPurchase ItemStatus = "Ready to Purchase"
	ItemStatusOrdered         ItemStatus = "Ordered"
	ItemStatusDelivered       ItemStatus = "Delivered"
	ItemStatusCompleted       ItemStatus = "Completed"
)

// ValidItemStatuses lists every accepted item status in display order.
var ValidItemStatuses = []ItemStatus{
	ItemStatusNeeded,
	ItemStatusResearching,
	ItemStatusReadyToPurchase,
	ItemStatusOrdered,
	ItemStatusDelivered,
	ItemStatusCompleted,
}

// IsValidItemStatus reports whether s is a member of ValidItemStatuses.
func IsValidItemStatus(s string) bool {
	for _, v := range ValidItemStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// ItemStatusList returns the accepted statuses joined for error messages.
func ItemStatusList() string {
	parts := make([]string, len(ValidItemStatuses))
	for i, v := range ValidItemStatuses {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// DefaultItemPriority is applied when a write omits the priority field.
// Note: it does not match any seeded priority level name; kept for
// compatibility with historical data.
const DefaultItemPriority = "must-have"

// Item represents a furnishing item assigned to a room
type Item struct {
	ID              int       `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	RoomID          int       `json:"room_id" db:"room_id"`
	Category        *string   `json:"category" db:"category"`
	Description     *string   `json:"description" db:"description"`
	Dimensions      *string   `json:"dimensions" db:"dimensions"`
	Cost            float64   `json:"cost" db:"cost"`
	BudgetAllocated float64   `json:"budget_allocated" db:"budget_allocated"`
	Vendor          *string   `json:"vendor" db:"vendor"`
	Status          string    `json:"status" db:"status"`
	Priority        string    `json:"priority" db:"priority"`
	DeliveryDate    *string   `json:"delivery_date" db:"delivery_date"`
	Notes           *string   `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Joined fields (not columns of furnishing_items)
	Room      *string `json:"room,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}
