package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// ItemFilter carries the optional query filters of GET /api/items. Zero
// values mean "match everything".
type ItemFilter struct {
	RoomID   string
	Category string
	Status   string
	Priority string
	Search   string
}

const itemColumns = `id, name, room_id, category, description, dimensions, cost, budget_allocated,
		vendor, status, priority, delivery_date, notes, created_at, updated_at`

// ListItems returns items matching every provided filter, joined with the
// room name and the priority sort order, ordered by priority then recency.
func (db *Database) ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	query := `
		SELECT i.id, i.name, i.room_id, i.category, i.description, i.dimensions, i.cost,
			i.budget_allocated, i.vendor, i.status, i.priority, i.delivery_date, i.notes,
			i.created_at, i.updated_at, r.name AS room_name, p.sort_order
		FROM furnishing_items i
		JOIN rooms r ON i.room_id = r.id
		LEFT JOIN priorities p ON i.priority = p.name
		WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.RoomID != "" {
		roomID, err := strconv.Atoi(filter.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid room_id filter %q: %w", filter.RoomID, err)
		}
		query += fmt.Sprintf(" AND i.room_id = $%d", argIdx)
		args = append(args, roomID)
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND i.category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Priority != "" {
		query += fmt.Sprintf(" AND i.priority = $%d", argIdx)
		args = append(args, filter.Priority)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.description ILIKE $%d OR i.vendor ILIKE $%d)",
			argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY p.sort_order ASC, i.created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		err := rows.Scan(
			&it.ID, &it.Name, &it.RoomID, &it.Category, &it.Description, &it.Dimensions,
			&it.Cost, &it.BudgetAllocated, &it.Vendor, &it.Status, &it.Priority,
			&it.DeliveryDate, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
			&it.Room, &it.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// GetItem returns a single item with its room name, or ErrNotFound.
func (db *Database) GetItem(ctx context.Context, id int) (*models.Item, error) {
	query := `
		SELECT i.id, i.name, i.room_id, i.category, i.description, i.dimensions, i.cost,
			i.budget_allocated, i.vendor, i.status, i.priority, i.delivery_date, i.notes,
			i.created_at, i.updated_at, r.name AS room_name
		FROM furnishing_items i
		JOIN rooms r ON i.room_id = r.id
		WHERE i.id = $1`

	var it models.Item
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.RoomID, &it.Category, &it.Description, &it.Dimensions,
		&it.Cost, &it.BudgetAllocated, &it.Vendor, &it.Status, &it.Priority,
		&it.DeliveryDate, &it.Notes, &it.CreatedAt, &it.UpdatedAt, &it.Room,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query item %d: %w", id, err)
	}

	return &it, nil
}

// CreateItem inserts a new item and returns the stored row with its room name.
func (db *Database) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	query := `
		INSERT INTO furnishing_items (
			name, room_id, category, description, dimensions,
			cost, budget_allocated, vendor, status, priority,
			delivery_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + itemColumns

	var created models.Item
	err := db.Pool.QueryRow(ctx, query,
		item.Name, item.RoomID, item.Category, item.Description, item.Dimensions,
		item.Cost, item.BudgetAllocated, item.Vendor, item.Status, item.Priority,
		item.DeliveryDate, item.Notes,
	).Scan(
		&created.ID, &created.Name, &created.RoomID, &created.Category, &created.Description,
		&created.Dimensions, &created.Cost, &created.BudgetAllocated, &created.Vendor,
		&created.Status, &created.Priority, &created.DeliveryDate, &created.Notes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	if err := db.attachRoomName(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem replaces every mutable column of an item, or returns ErrNotFound.
func (db *Database) UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	query := `
		UPDATE furnishing_items
		SET name = $1, room_id = $2, category = $3, description = $4, dimensions = $5,
			cost = $6, budget_allocated = $7, vendor = $8, status = $9, priority = $10,
			delivery_date = $11, notes = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING ` + itemColumns

	var updated models.Item
	err := db.Pool.QueryRow(ctx, query,
		item.Name, item.RoomID, item.Category, item.Description, item.Dimensions,
		item.Cost, item.BudgetAllocated, item.Vendor, item.Status, item.Priority,
		item.DeliveryDate, item.Notes, id,
	).Scan(
		&updated.ID, &updated.Name, &updated.RoomID, &updated.Category, &updated.Description,
		&updated.Dimensions, &updated.Cost, &updated.BudgetAllocated, &updated.Vendor,
		&updated.Status, &updated.Priority, &updated.DeliveryDate, &updated.Notes,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}

	if err := db.attachRoomName(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteItem removes an item, or returns ErrNotFound.
func (db *Database) DeleteItem(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM furnishing_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Database) attachRoomName(ctx context.Context, item *models.Item) error {
	var roomName string
	err := db.Pool.QueryRow(ctx, "SELECT name FROM rooms WHERE id = $1", item.RoomID).Scan(&roomName)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return fmt.Errorf("query room name for item %d: %w", item.ID, err)
	}
	item.Room = &roomName
	return nil
}
