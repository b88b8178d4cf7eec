package db

import (
	"context"
	"fmt"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// ListPriorities returns all priority levels in ascending sort order.
func (db *Database) ListPriorities(ctx context.Context) ([]models.PriorityLevel, error) {
	rows, err := db.Pool.Query(ctx, "SELECT id, name, sort_order FROM priorities ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("query priorities: %w", err)
	}
	defer rows.Close()

	var priorities []models.PriorityLevel
	for rows.Next() {
		var p models.PriorityLevel
		if err := rows.Scan(&p.ID, &p.Name, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("scan priority: %w", err)
		}
		priorities = append(priorities, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate priorities: %w", err)
	}

	return priorities, nil
}

// PriorityExists reports whether a priority level with the given name exists.
// Used by write validation of furnishing items.
func (db *Database) PriorityExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := db.Pool.QueryRow(ctx, "SELECT 1 FROM priorities WHERE name = $1", name).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("query priority %q: %w", name, err)
	}
	return true, nil
}
