package db

import (
	"context"
	"fmt"
	"time"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// dateLiteral matches values that start with an ISO date, which is what the
// delivery and scheduled date columns hold when set by the UI. TO_DATE is only
// applied to matching rows so free-text values cannot break the stats queries.
const dateLiteral = `^\d{4}-\d{2}-\d{2}`

// upcomingWindow returns the inclusive [today, today+7d] date bounds used by
// the upcoming deliveries and appointments queries, in the local calendar.
func upcomingWindow(now time.Time) (from, to string) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.Format("2006-01-02"), today.AddDate(0, 0, 7).Format("2006-01-02")
}

// ItemStats builds the furnishing item statistics report: overall counts and
// sums, per-room and per-priority breakdowns, and deliveries due in the next
// seven days.
func (db *Database) ItemStats(ctx context.Context) (*models.ItemStats, error) {
	stats := &models.ItemStats{
		ByRoom:             []models.RoomStats{},
		ByPriority:         []models.PriorityStats{},
		UpcomingDeliveries: []models.Item{},
	}

	overallQuery := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COALESCE(SUM(cost), 0),
			COALESCE(SUM(budget_allocated), 0)
		FROM furnishing_items`
	err := db.Pool.QueryRow(ctx, overallQuery).Scan(
		&stats.Overall.TotalItems, &stats.Overall.CompletedItems,
		&stats.Overall.TotalSpent, &stats.Overall.TotalBudget,
	)
	if err != nil {
		return nil, fmt.Errorf("query overall item stats: %w", err)
	}

	byRoom, err := db.roomStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.ByRoom = byRoom

	byPriority, err := db.priorityStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.ByPriority = byPriority

	upcoming, err := db.upcomingDeliveries(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	stats.UpcomingDeliveries = upcoming

	return stats, nil
}

// roomStats returns one row per room, including rooms without items. The
// effective budget is resolved here rather than in SQL: the room's own budget
// wins when positive, otherwise the summed item allocations stand in for it.
func (db *Database) roomStats(ctx context.Context) ([]models.RoomStats, error) {
	query := `
		SELECT r.name, r.id,
			COUNT(i.id),
			COUNT(i.id) FILTER (WHERE i.status = 'Completed'),
			COALESCE(SUM(i.cost), 0),
			r.budget,
			COALESCE(SUM(i.budget_allocated), 0)
		FROM rooms r
		LEFT JOIN furnishing_items i ON i.room_id = r.id
		GROUP BY r.id, r.name, r.budget
		ORDER BY r.name ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query room stats: %w", err)
	}
	defer rows.Close()

	stats := []models.RoomStats{}
	for rows.Next() {
		var s models.RoomStats
		err := rows.Scan(&s.Room, &s.RoomID, &s.TotalItems, &s.CompletedItems,
			&s.Spent, &s.RoomBudget, &s.ItemBudgetSum)
		if err != nil {
			return nil, fmt.Errorf("scan room stats: %w", err)
		}
		s.Budget = effectiveBudget(s.RoomBudget, s.ItemBudgetSum)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room stats: %w", err)
	}

	return stats, nil
}

// effectiveBudget picks the room budget when positive, the item allocation sum
// otherwise.
func effectiveBudget(roomBudget, itemBudgetSum float64) float64 {
	if roomBudget > 0 {
		return roomBudget
	}
	return itemBudgetSum
}

func (db *Database) priorityStats(ctx context.Context) ([]models.PriorityStats, error) {
	query := `
		SELECT i.priority,
			COUNT(*),
			COALESCE(SUM(i.cost), 0),
			COALESCE(SUM(i.budget_allocated), 0)
		FROM furnishing_items i
		LEFT JOIN priorities p ON i.priority = p.name
		GROUP BY i.priority, p.sort_order
		ORDER BY p.sort_order ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query priority stats: %w", err)
	}
	defer rows.Close()

	stats := []models.PriorityStats{}
	for rows.Next() {
		var s models.PriorityStats
		if err := rows.Scan(&s.Priority, &s.TotalItems, &s.Spent, &s.Budget); err != nil {
			return nil, fmt.Errorf("scan priority stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate priority stats: %w", err)
	}

	return stats, nil
}

func (db *Database) upcomingDeliveries(ctx context.Context, now time.Time) ([]models.Item, error) {
	from, to := upcomingWindow(now)

	query := `
		SELECT i.id, i.name, i.room_id, i.category, i.description, i.dimensions, i.cost,
			i.budget_allocated, i.vendor, i.status, i.priority, i.delivery_date, i.notes,
			i.created_at, i.updated_at, r.name AS room_name
		FROM furnishing_items i
		JOIN rooms r ON i.room_id = r.id
		WHERE i.delivery_date IS NOT NULL
			AND i.delivery_date ~ '` + dateLiteral + `'
			AND TO_DATE(SUBSTRING(i.delivery_date FROM 1 FOR 10), 'YYYY-MM-DD') BETWEEN $1::date AND $2::date
		ORDER BY TO_DATE(SUBSTRING(i.delivery_date FROM 1 FOR 10), 'YYYY-MM-DD') ASC`

	rows, err := db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query upcoming deliveries: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		err := rows.Scan(
			&it.ID, &it.Name, &it.RoomID, &it.Category, &it.Description, &it.Dimensions,
			&it.Cost, &it.BudgetAllocated, &it.Vendor, &it.Status, &it.Priority,
			&it.DeliveryDate, &it.Notes, &it.CreatedAt, &it.UpdatedAt, &it.Room,
		)
		if err != nil {
			return nil, fmt.Errorf("scan upcoming delivery: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upcoming deliveries: %w", err)
	}

	return items, nil
}

// LogisticsStats builds the logistics statistics report: overall status
// counts, the per-(service type, completion status) breakdown, and
// appointments scheduled in the next seven days.
func (db *Database) LogisticsStats(ctx context.Context) (*models.LogisticsStats, error) {
	stats := &models.LogisticsStats{
		ByServiceType:        []models.ServiceTypeStats{},
		UpcomingAppointments: []models.LogisticsEntry{},
	}

	overallQuery := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE completion_status = 'Completed'),
			COUNT(*) FILTER (WHERE completion_status = 'In Progress'),
			COUNT(*) FILTER (WHERE completion_status = 'Pending'),
			COALESCE(SUM(cost), 0)
		FROM logistics`
	err := db.Pool.QueryRow(ctx, overallQuery).Scan(
		&stats.Overall.TotalServices, &stats.Overall.CompletedServices,
		&stats.Overall.InProgressServices, &stats.Overall.PendingServices,
		&stats.Overall.TotalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("query overall logistics stats: %w", err)
	}

	// Grouping by the (service_type, completion_status) pair is intentional,
	// so a service type split across statuses produces one row per status.
	byTypeQuery := `
		SELECT service_type,
			COUNT(*),
			COUNT(*) FILTER (WHERE completion_status = 'Completed'),
			completion_status
		FROM logistics
		GROUP BY service_type, completion_status
		ORDER BY service_type ASC`

	rows, err := db.Pool.Query(ctx, byTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("query service type stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ServiceTypeStats
		if err := rows.Scan(&s.ServiceType, &s.Total, &s.Completed, &s.CompletionStatus); err != nil {
			return nil, fmt.Errorf("scan service type stats: %w", err)
		}
		stats.ByServiceType = append(stats.ByServiceType, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service type stats: %w", err)
	}

	upcoming, err := db.upcomingAppointments(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	stats.UpcomingAppointments = upcoming

	return stats, nil
}

func (db *Database) upcomingAppointments(ctx context.Context, now time.Time) ([]models.LogisticsEntry, error) {
	from, to := upcomingWindow(now)

	query := `
		SELECT ` + logisticsColumns + `
		FROM logistics
		WHERE scheduled_date IS NOT NULL
			AND scheduled_date ~ '` + dateLiteral + `'
			AND TO_DATE(SUBSTRING(scheduled_date FROM 1 FOR 10), 'YYYY-MM-DD') BETWEEN $1::date AND $2::date
		ORDER BY TO_DATE(SUBSTRING(scheduled_date FROM 1 FOR 10), 'YYYY-MM-DD') ASC`

	rows, err := db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query upcoming appointments: %w", err)
	}
	defer rows.Close()

	entries := []models.LogisticsEntry{}
	for rows.Next() {
		var e models.LogisticsEntry
		err := rows.Scan(
			&e.ID, &e.ServiceType, &e.ProviderName, &e.ApplicationDate, &e.ScheduledDate,
			&e.CompletionStatus, &e.Priority, &e.AccountNumber, &e.ContactInfo, &e.Cost,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan upcoming appointment: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upcoming appointments: %w", err)
	}

	return entries, nil
}
