package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// testServer serves a minimal slice of the API from fixed fixtures and counts
// stats fetches so tests can assert the refetch-after-mutation contract.
type testServer struct {
	*httptest.Server

	itemStatsFetches int
	failItemCreate   bool
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/items/stats", func(w http.ResponseWriter, r *http.Request) {
		ts.itemStatsFetches++
		writeJSON(w, http.StatusOK, models.ItemStats{
			Overall:            models.ItemOverallStats{TotalItems: ts.itemStatsFetches},
			ByRoom:             []models.RoomStats{},
			ByPriority:         []models.PriorityStats{},
			UpcomingDeliveries: []models.Item{},
		})
	})

	mux.HandleFunc("/api/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []models.Item{
				{ID: 1, Name: "Sofa", RoomID: 1, Status: "Needed"},
			})
		case http.MethodPost:
			if ts.failItemCreate {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "Missing required fields: name and room_id are required",
				})
				return
			}
			var item models.Item
			require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
			item.ID = 42
			writeJSON(w, http.StatusCreated, item)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/items/42", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			var item models.Item
			require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
			item.ID = 42
			writeJSON(w, http.StatusOK, item)
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/logistics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.LogisticsEntry{})
	})
	mux.HandleFunc("/api/logistics/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LogisticsStats{
			ByServiceType:        []models.ServiceTypeStats{},
			UpcomingAppointments: []models.LogisticsEntry{},
		})
	})
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Room{{ID: 1, Name: "Kitchen", Budget: 2000}})
	})
	mux.HandleFunc("/api/priorities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.PriorityLevel{{ID: 1, Name: "Day 1", SortOrder: 10}})
	})
	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"total_budget": "50000"})
	})
	mux.HandleFunc("/api/settings/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"key": "total_budget", "value": "60000"})
	})

	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestStore(t *testing.T) (*Store, *testServer) {
	t.Helper()
	ts := newTestServer(t)
	return NewStore(New(ts.URL + "/api")), ts
}

func TestRefreshAllLoadsEveryCollection(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.RefreshAll(context.Background()))

	assert.Len(t, store.Items(), 1)
	assert.Len(t, store.Rooms(), 1)
	assert.Len(t, store.Priorities(), 1)
	assert.Equal(t, "50000", store.Settings()["total_budget"])
	require.NotNil(t, store.ItemStats())
	require.NotNil(t, store.LogisticsStats())
}

func TestCreateItemMergesAndRefetchesStats(t *testing.T) {
	store, ts := newTestStore(t)
	require.NoError(t, store.RefreshAll(context.Background()))
	statsBefore := ts.itemStatsFetches

	created, err := store.CreateItem(context.Background(), models.Item{Name: "Lamp", RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 42, items[0].ID, "created item is prepended")
	assert.Equal(t, statsBefore+1, ts.itemStatsFetches, "stats are refetched after the mutation")
}

func TestFailedCreateLeavesCacheUntouched(t *testing.T) {
	store, ts := newTestStore(t)
	require.NoError(t, store.RefreshAll(context.Background()))
	ts.failItemCreate = true
	statsBefore := ts.itemStatsFetches

	_, err := store.CreateItem(context.Background(), models.Item{})

	require.Error(t, err)
	var apiError *APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusBadRequest, apiError.StatusCode)
	assert.Equal(t, "Missing required fields: name and room_id are required", apiError.Message)

	assert.Len(t, store.Items(), 1, "cache unchanged after failed mutation")
	assert.Equal(t, statsBefore, ts.itemStatsFetches, "no stats refetch after failed mutation")
}

func TestUpdateItemMergesInPlace(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.RefreshAll(context.Background()))
	created, err := store.CreateItem(context.Background(), models.Item{Name: "Lamp", RoomID: 1})
	require.NoError(t, err)

	updated, err := store.UpdateItem(context.Background(), created.ID, models.Item{Name: "Floor Lamp", RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", updated.Name)

	for _, it := range store.Items() {
		if it.ID == created.ID {
			assert.Equal(t, "Floor Lamp", it.Name)
			return
		}
	}
	t.Fatal("updated item missing from cache")
}

func TestDeleteItemDropsFromCache(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.RefreshAll(context.Background()))
	created, err := store.CreateItem(context.Background(), models.Item{Name: "Lamp", RoomID: 1})
	require.NoError(t, err)

	require.NoError(t, store.DeleteItem(context.Background(), created.ID))

	for _, it := range store.Items() {
		assert.NotEqual(t, created.ID, it.ID)
	}
}

func TestUpdateSettingMergesIntoMap(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.UpdateSetting(context.Background(), "total_budget", "60000"))

	assert.Equal(t, "60000", store.Settings()["total_budget"])
}
