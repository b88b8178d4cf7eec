package db

import (
	"context"
	"fmt"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// LogisticsFilter carries the optional query filters of GET /api/logistics.
type LogisticsFilter struct {
	ServiceType      string
	CompletionStatus string
}

const logisticsColumns = `id, service_type, provider_name, application_date, scheduled_date,
		completion_status, priority, account_number, contact_info, cost, notes, created_at, updated_at`

// ListLogistics returns logistics entries matching every provided filter,
// joined with the sort order of the matching priority level.
func (db *Database) ListLogistics(ctx context.Context, filter LogisticsFilter) ([]models.LogisticsEntry, error) {
	query := `
		SELECT l.id, l.service_type, l.provider_name, l.application_date, l.scheduled_date,
			l.completion_status, l.priority, l.account_number, l.contact_info, l.cost, l.notes,
			l.created_at, l.updated_at, p.sort_order
		FROM logistics l
		LEFT JOIN priorities p ON l.priority = p.name
		WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.ServiceType != "" {
		query += fmt.Sprintf(" AND l.service_type = $%d", argIdx)
		args = append(args, filter.ServiceType)
		argIdx++
	}
	if filter.CompletionStatus != "" {
		query += fmt.Sprintf(" AND l.completion_status = $%d", argIdx)
		args = append(args, filter.CompletionStatus)
		argIdx++
	}

	query += " ORDER BY p.sort_order ASC, l.created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query logistics: %w", err)
	}
	defer rows.Close()

	var entries []models.LogisticsEntry
	for rows.Next() {
		var e models.LogisticsEntry
		err := rows.Scan(
			&e.ID, &e.ServiceType, &e.ProviderName, &e.ApplicationDate, &e.ScheduledDate,
			&e.CompletionStatus, &e.Priority, &e.AccountNumber, &e.ContactInfo, &e.Cost,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("scan logistics entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logistics: %w", err)
	}

	return entries, nil
}

// GetLogisticsEntry returns a single logistics entry, or ErrNotFound.
func (db *Database) GetLogisticsEntry(ctx context.Context, id int) (*models.LogisticsEntry, error) {
	var e models.LogisticsEntry
	err := db.Pool.QueryRow(ctx, "SELECT "+logisticsColumns+" FROM logistics WHERE id = $1", id).Scan(
		&e.ID, &e.ServiceType, &e.ProviderName, &e.ApplicationDate, &e.ScheduledDate,
		&e.CompletionStatus, &e.Priority, &e.AccountNumber, &e.ContactInfo, &e.Cost,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query logistics entry %d: %w", id, err)
	}

	return &e, nil
}

// CreateLogisticsEntry inserts a new logistics entry and returns the stored row.
func (db *Database) CreateLogisticsEntry(ctx context.Context, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	query := `
		INSERT INTO logistics (
			service_type, provider_name, application_date, scheduled_date,
			completion_status, priority, account_number, contact_info, cost, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + logisticsColumns

	var created models.LogisticsEntry
	err := db.Pool.QueryRow(ctx, query,
		entry.ServiceType, entry.ProviderName, entry.ApplicationDate, entry.ScheduledDate,
		entry.CompletionStatus, entry.Priority, entry.AccountNumber, entry.ContactInfo,
		entry.Cost, entry.Notes,
	).Scan(
		&created.ID, &created.ServiceType, &created.ProviderName, &created.ApplicationDate,
		&created.ScheduledDate, &created.CompletionStatus, &created.Priority,
		&created.AccountNumber, &created.ContactInfo, &created.Cost, &created.Notes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert logistics entry: %w", err)
	}

	return &created, nil
}

// UpdateLogisticsEntry replaces every mutable column, or returns ErrNotFound.
func (db *Database) UpdateLogisticsEntry(ctx context.Context, id int, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	query := `
		UPDATE logistics
		SET service_type = $1, provider_name = $2, application_date = $3, scheduled_date = $4,
			completion_status = $5, priority = $6, account_number = $7, contact_info = $8,
			cost = $9, notes = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING ` + logisticsColumns

	var updated models.LogisticsEntry
	err := db.Pool.QueryRow(ctx, query,
		entry.ServiceType, entry.ProviderName, entry.ApplicationDate, entry.ScheduledDate,
		entry.CompletionStatus, entry.Priority, entry.AccountNumber, entry.ContactInfo,
		entry.Cost, entry.Notes, id,
	).Scan(
		&updated.ID, &updated.ServiceType, &updated.ProviderName, &updated.ApplicationDate,
		&updated.ScheduledDate, &updated.CompletionStatus, &updated.Priority,
		&updated.AccountNumber, &updated.ContactInfo, &updated.Cost, &updated.Notes,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update logistics entry %d: %w", id, err)
	}

	return &updated, nil
}

// DeleteLogisticsEntry removes a logistics entry, or returns ErrNotFound.
func (db *Database) DeleteLogisticsEntry(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM logistics WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete logistics entry %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
