package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

func strPtr(s string) *string { return &s }

func testPriorities() []models.PriorityLevel {
	return []models.PriorityLevel{
		{ID: 1, Name: "Day 1", SortOrder: 10},
		{ID: 2, Name: "Week 1", SortOrder: 20},
		{ID: 3, Name: "Later", SortOrder: 50},
	}
}

func TestFilterItemsSearchIsCaseInsensitive(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Sofa"},
		{ID: 2, Name: "Coffee Table", Description: strPtr("Goes next to the sofa")},
		{ID: 3, Name: "Lamp", Vendor: strPtr("SofaWorld")},
		{ID: 4, Name: "Fridge"},
	}

	got := FilterItems(items, ItemQuery{Search: "sofa"})

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 3, got[2].ID)
}

func TestFilterItemsCombinesCriteriaWithAnd(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Sofa", RoomID: 1, Status: "Needed", Priority: "Day 1"},
		{ID: 2, Name: "Sofa Bed", RoomID: 2, Status: "Needed", Priority: "Day 1"},
		{ID: 3, Name: "Sofa Cover", RoomID: 1, Status: "Completed", Priority: "Day 1"},
	}

	got := FilterItems(items, ItemQuery{Search: "sofa", RoomID: 1, Status: "Needed"})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilterItemsEmptyQueryMatchesEverything(t *testing.T) {
	items := []models.Item{{ID: 1}, {ID: 2}}
	assert.Len(t, FilterItems(items, ItemQuery{}), 2)
}

func TestSortItemsByPriorityUnknownLast(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "C", Priority: "Unknown"},
		{ID: 2, Name: "A", Priority: "Later"},
		{ID: 3, Name: "B", Priority: "Day 1"},
	}

	SortItems(items, SortByPriority, testPriorities())

	assert.Equal(t, "Day 1", items[0].Priority)
	assert.Equal(t, "Later", items[1].Priority)
	assert.Equal(t, "Unknown", items[2].Priority)
}

func TestSortItemsByDeliveryDateNullsLast(t *testing.T) {
	items := []models.Item{
		{ID: 1, DeliveryDate: nil},
		{ID: 2, DeliveryDate: strPtr("2025-04-20")},
		{ID: 3, DeliveryDate: strPtr("2025-04-01")},
		{ID: 4, DeliveryDate: strPtr("")},
	}

	SortItems(items, SortByDeliveryDate, nil)

	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
	// undated items keep their relative order at the end
	assert.Equal(t, 1, items[2].ID)
	assert.Equal(t, 4, items[3].ID)
}

func TestSortItemsByCostDescending(t *testing.T) {
	items := []models.Item{
		{ID: 1, Cost: 50},
		{ID: 2, Cost: 1500},
		{ID: 3, Cost: 300},
	}

	SortItems(items, SortByCost, nil)

	assert.Equal(t, 1500.0, items[0].Cost)
	assert.Equal(t, 300.0, items[1].Cost)
	assert.Equal(t, 50.0, items[2].Cost)
}

func TestSortItemsDefaultIsNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.Item{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(24 * time.Hour)},
	}

	SortItems(items, SortByCreatedAt, nil)

	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
	assert.Equal(t, 1, items[2].ID)
}

func TestSortItemsByNameAscending(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Table"},
		{ID: 2, Name: "Chair"},
	}

	SortItems(items, SortByName, nil)

	assert.Equal(t, "Chair", items[0].Name)
	assert.Equal(t, "Table", items[1].Name)
}

func TestGroupItemsByRoomKeepsEmptyBuckets(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "Kitchen"},
		{ID: 2, Name: "Laundry"},
	}
	items := []models.Item{
		{ID: 1, Name: "Fridge", RoomID: 1},
		{ID: 2, Name: "Mystery", RoomID: 9},
	}

	groups := GroupItemsByRoom(items, rooms)

	require.Len(t, groups, 3)
	assert.Len(t, groups["Kitchen"], 1)
	assert.Empty(t, groups["Laundry"])
	require.Len(t, groups["Unassigned"], 1)
	assert.Equal(t, "Mystery", groups["Unassigned"][0].Name)
}

func TestGroupItemsByRoomOmitsEmptyUnassigned(t *testing.T) {
	rooms := []models.Room{{ID: 1, Name: "Kitchen"}}
	items := []models.Item{{ID: 1, RoomID: 1}}

	groups := GroupItemsByRoom(items, rooms)

	assert.NotContains(t, groups, "Unassigned")
}

func TestGroupItemsByVendor(t *testing.T) {
	items := []models.Item{
		{ID: 1, Vendor: strPtr("IKEA")},
		{ID: 2, Vendor: strPtr("IKEA")},
		{ID: 3, Vendor: nil},
		{ID: 4, Vendor: strPtr("")},
	}

	groups := GroupItemsByVendor(items)

	require.Len(t, groups, 2)
	assert.Len(t, groups["IKEA"], 2)
	assert.Len(t, groups["No Vendor"], 2)
}

func TestGroupLabelsAscending(t *testing.T) {
	groups := map[string][]models.Item{
		"Target": {},
		"IKEA":   {},
		"Kmart":  {},
	}

	assert.Equal(t, []string{"IKEA", "Kmart", "Target"}, GroupLabels(groups))
}
