package models

import (
	"strings"
	"time"
)

// CompletionStatus represents the three-state lifecycle of a logistics entry
type CompletionStatus string

const (
	CompletionStatusPending    CompletionStatus = "Pending"
	CompletionStatusInProgress CompletionStatus = "In Progress"
	CompletionStatusCompleted  CompletionStatus = "Completed"
)

// ValidCompletionStatuses lists every accepted completion status.
var ValidCompletionStatuses = []CompletionStatus{
	CompletionStatusPending,
	CompletionStatusInProgress,
	CompletionStatusCompleted,
}

// IsValidCompletionStatus reports whether s is a member of ValidCompletionStatuses.
func IsValidCompletionStatus(s string) bool {
	for _, v := range ValidCompletionStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// CompletionStatusList returns the accepted statuses joined for error messages.
func CompletionStatusList() string {
	parts := make([]string, len(ValidCompletionStatuses))
	for i, v := range ValidCompletionStatuses {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// DefaultLogisticsPriority is applied when a write omits the priority field.
// Logistics priority is free text and is not checked against the priorities
// table, unlike item priority.
const DefaultLogisticsPriority = "Normal"

// LogisticsEntry represents a utility or service setup task
type LogisticsEntry struct {
	ID               int       `json:"id" db:"id"`
	ServiceType      string    `json:"service_type" db:"service_type"`
	ProviderName     *string   `json:"provider_name" db:"provider_name"`
	ApplicationDate  *string   `json:"application_date" db:"application_date"`
	ScheduledDate    *string   `json:"scheduled_date" db:"scheduled_date"`
	CompletionStatus string    `json:"completion_status" db:"completion_status"`
	Priority         string    `json:"priority" db:"priority"`
	AccountNumber    *string   `json:"account_number" db:"account_number"`
	ContactInfo      *string   `json:"contact_info" db:"contact_info"`
	Cost             float64   `json:"cost" db:"cost"`
	Notes            *string   `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	// Joined field: sort_order of the matching priority level, if any
	SortOrder *int `json:"sort_order,omitempty"`
}
