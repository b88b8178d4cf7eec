package client

import (
	"sort"
	"strings"
	"time"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// SortKey selects the ordering of a displayed item list.
type SortKey string

const (
	SortByCreatedAt    SortKey = "created_at" // newest first, the default
	SortByName         SortKey = "name"
	SortByCost         SortKey = "cost" // highest first
	SortByPriority     SortKey = "priority"
	SortByDeliveryDate SortKey = "delivery_date" // soonest first, undated last
)

// ItemQuery is the client-side filter applied to a displayed item list.
// Absent fields match everything; provided fields are ANDed.
type ItemQuery struct {
	Search   string
	RoomID   int
	Category string
	Status   string
	Priority string
}

// FilterItems returns the items satisfying every provided criterion. The
// search term matches name, description or vendor, case-insensitively.
func FilterItems(items []models.Item, q ItemQuery) []models.Item {
	search := strings.ToLower(q.Search)

	var out []models.Item
	for _, item := range items {
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		if q.RoomID != 0 && item.RoomID != q.RoomID {
			continue
		}
		if q.Category != "" && (item.Category == nil || *item.Category != q.Category) {
			continue
		}
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.Priority != "" && item.Priority != q.Priority {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item models.Item, search string) bool {
	if strings.Contains(strings.ToLower(item.Name), search) {
		return true
	}
	if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), search) {
		return true
	}
	if item.Vendor != nil && strings.Contains(strings.ToLower(*item.Vendor), search) {
		return true
	}
	return false
}

// unknownSortOrder places items whose priority has no matching level after
// every known level.
const unknownSortOrder = int(^uint(0) >> 1)

// SortItems orders items in place by the given key. Priority ordering uses
// the levels' sort_order; an item priority with no matching level sorts last.
func SortItems(items []models.Item, key SortKey, priorities []models.PriorityLevel) {
	switch key {
	case SortByName:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
	case SortByCost:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Cost > items[j].Cost
		})
	case SortByDeliveryDate:
		sort.SliceStable(items, func(i, j int) bool {
			di, iok := parseDeliveryDate(items[i].DeliveryDate)
			dj, jok := parseDeliveryDate(items[j].DeliveryDate)
			if !iok {
				return false
			}
			if !jok {
				return true
			}
			return di.Before(dj)
		})
	case SortByPriority:
		order := make(map[string]int, len(priorities))
		for _, p := range priorities {
			order[p.Name] = p.SortOrder
		}
		sortOrder := func(name string) int {
			if o, ok := order[name]; ok {
				return o
			}
			return unknownSortOrder
		}
		sort.SliceStable(items, func(i, j int) bool {
			return sortOrder(items[i].Priority) < sortOrder(items[j].Priority)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

func parseDeliveryDate(raw *string) (time.Time, bool) {
	if raw == nil || *raw == "" {
		return time.Time{}, false
	}
	value := *raw
	if len(value) > 10 {
		value = value[:10]
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GroupItemsByRoom buckets items under their room's name. Every known room
// gets a bucket even when empty; items referencing no known room land in
// "Unassigned", which only appears when non-empty.
func GroupItemsByRoom(items []models.Item, rooms []models.Room) map[string][]models.Item {
	groups := make(map[string][]models.Item, len(rooms))
	known := make(map[int]string, len(rooms))
	for _, room := range rooms {
		groups[room.Name] = []models.Item{}
		known[room.ID] = room.Name
	}

	var unassigned []models.Item
	for _, item := range items {
		if name, ok := known[item.RoomID]; ok {
			groups[name] = append(groups[name], item)
		} else {
			unassigned = append(unassigned, item)
		}
	}
	if len(unassigned) > 0 {
		groups["Unassigned"] = unassigned
	}

	return groups
}

// GroupItemsByVendor buckets items under their vendor string, with items
// lacking a vendor collected under "No Vendor".
func GroupItemsByVendor(items []models.Item) map[string][]models.Item {
	groups := map[string][]models.Item{}
	for _, item := range items {
		vendor := "No Vendor"
		if item.Vendor != nil && *item.Vendor != "" {
			vendor = *item.Vendor
		}
		groups[vendor] = append(groups[vendor], item)
	}
	return groups
}

// GroupLabels returns the group names in ascending display order.
func GroupLabels(groups map[string][]models.Item) []string {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
