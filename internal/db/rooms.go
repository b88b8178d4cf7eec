package db

import (
	"context"
	"fmt"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

const roomColumns = "id, name, description, budget, created_at, updated_at"

// ListRooms returns all rooms ordered by name.
func (db *Database) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := db.Pool.Query(ctx, "SELECT "+roomColumns+" FROM rooms ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Budget, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

// CreateRoom inserts a new room. A duplicate name yields ErrDuplicate.
func (db *Database) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	query := "INSERT INTO rooms (name, description, budget) VALUES ($1, $2, $3) RETURNING " + roomColumns

	var created models.Room
	err := db.Pool.QueryRow(ctx, query, room.Name, room.Description, room.Budget).Scan(
		&created.ID, &created.Name, &created.Description, &created.Budget,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert room: %w", err)
	}

	return &created, nil
}

// UpdateRoom replaces a room's fields. Returns ErrNotFound for an unknown id
// and ErrDuplicate when the new name collides with another room.
func (db *Database) UpdateRoom(ctx context.Context, id int, room models.Room) (*models.Room, error) {
	query := `
		UPDATE rooms
		SET name = $1, description = $2, budget = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + roomColumns

	var updated models.Room
	err := db.Pool.QueryRow(ctx, query, room.Name, room.Description, room.Budget, id).Scan(
		&updated.ID, &updated.Name, &updated.Description, &updated.Budget,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}

	return &updated, nil
}

// DeleteRoom removes a room. The furnishing_items FK cascades, so the room's
// items are deleted with it.
func (db *Database) DeleteRoom(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
