package models

// ItemOverallStats summarizes all furnishing items
type ItemOverallStats struct {
	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	TotalSpent     float64 `json:"total_spent"`
	TotalBudget    float64 `json:"total_budget"`
}

// RoomStats summarizes the items of one room. Budget is the effective budget:
// the room's own budget when positive, otherwise the sum of the room's item
// allocations.
type RoomStats struct {
	Room           string  `json:"room"`
	RoomID         int     `json:"room_id"`
	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	Spent          float64 `json:"spent"`
	RoomBudget     float64 `json:"room_budget"`
	ItemBudgetSum  float64 `json:"item_budget_sum"`
	Budget         float64 `json:"budget"`
}

// PriorityStats summarizes items sharing one priority value
type PriorityStats struct {
	Priority   string  `json:"priority"`
	TotalItems int     `json:"total_items"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
}

// ItemStats is the response body of GET /api/items/stats
type ItemStats struct {
	Overall            ItemOverallStats `json:"overall"`
	ByRoom             []RoomStats      `json:"byRoom"`
	ByPriority         []PriorityStats  `json:"byPriority"`
	UpcomingDeliveries []Item           `json:"upcomingDeliveries"`
}

// LogisticsOverallStats summarizes all logistics entries
type LogisticsOverallStats struct {
	TotalServices      int     `json:"total_services"`
	CompletedServices  int     `json:"completed_services"`
	InProgressServices int     `json:"in_progress_services"`
	PendingServices    int     `json:"pending_services"`
	TotalCost          float64 `json:"total_cost"`
}

// ServiceTypeStats is one (service_type, completion_status) bucket. The pair
// grouping is deliberate: a service type spread over two statuses yields two
// rows.
type ServiceTypeStats struct {
	ServiceType      string `json:"service_type"`
	Total            int    `json:"total"`
	Completed        int    `json:"completed"`
	CompletionStatus string `json:"completion_status"`
}

// LogisticsStats is the response body of GET /api/logistics/stats
type LogisticsStats struct {
	Overall              LogisticsOverallStats `json:"overall"`
	ByServiceType        []ServiceTypeStats    `json:"byServiceType"`
	UpcomingAppointments []LogisticsEntry      `json:"upcomingAppointments"`
}
