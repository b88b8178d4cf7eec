package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nestready/nestready/backend/planner-service/internal/db"
	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	items      map[int]models.Item
	logistics  map[int]models.LogisticsEntry
	rooms      map[int]models.Room
	priorities []models.PriorityLevel
	settings   map[string]string
	nextID     int

	healthErr error
	failAll   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[int]models.Item{},
		logistics: map[int]models.LogisticsEntry{},
		rooms:     map[int]models.Room{},
		priorities: []models.PriorityLevel{
			{ID: 1, Name: "Day 1", SortOrder: 10},
			{ID: 2, Name: "Week 1", SortOrder: 20},
			{ID: 3, Name: "Later", SortOrder: 50},
		},
		settings: map[string]string{},
		nextID:   1,
	}
}

var errStore = errors.New("store down")

func (f *fakeStore) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeStore) ListItems(ctx context.Context, filter db.ItemFilter) ([]models.Item, error) {
	if f.failAll {
		return nil, errStore
	}
	var out []models.Item
	for _, it := range f.items {
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetItem(ctx context.Context, id int) (*models.Item, error) {
	if f.failAll {
		return nil, errStore
	}
	it, ok := f.items[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &it, nil
}

func (f *fakeStore) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	if f.failAll {
		return nil, errStore
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return &item, nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	if f.failAll {
		return nil, errStore
	}
	if _, ok := f.items[id]; !ok {
		return nil, db.ErrNotFound
	}
	item.ID = id
	f.items[id] = item
	return &item, nil
}

func (f *fakeStore) DeleteItem(ctx context.Context, id int) error {
	if f.failAll {
		return errStore
	}
	if _, ok := f.items[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) ItemStats(ctx context.Context) (*models.ItemStats, error) {
	if f.failAll {
		return nil, errStore
	}
	stats := &models.ItemStats{
		ByRoom:             []models.RoomStats{},
		ByPriority:         []models.PriorityStats{},
		UpcomingDeliveries: []models.Item{},
	}
	for _, it := range f.items {
		stats.Overall.TotalItems++
		if it.Status == "Completed" {
			stats.Overall.CompletedItems++
		}
		stats.Overall.TotalSpent += it.Cost
		stats.Overall.TotalBudget += it.BudgetAllocated
	}
	return stats, nil
}

func (f *fakeStore) ListLogistics(ctx context.Context, filter db.LogisticsFilter) ([]models.LogisticsEntry, error) {
	if f.failAll {
		return nil, errStore
	}
	var out []models.LogisticsEntry
	for _, e := range f.logistics {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetLogisticsEntry(ctx context.Context, id int) (*models.LogisticsEntry, error) {
	e, ok := f.logistics[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &e, nil
}

func (f *fakeStore) CreateLogisticsEntry(ctx context.Context, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	entry.ID = f.nextID
	f.nextID++
	f.logistics[entry.ID] = entry
	return &entry, nil
}

func (f *fakeStore) UpdateLogisticsEntry(ctx context.Context, id int, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	if _, ok := f.logistics[id]; !ok {
		return nil, db.ErrNotFound
	}
	entry.ID = id
	f.logistics[id] = entry
	return &entry, nil
}

func (f *fakeStore) DeleteLogisticsEntry(ctx context.Context, id int) error {
	if _, ok := f.logistics[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.logistics, id)
	return nil
}

func (f *fakeStore) LogisticsStats(ctx context.Context) (*models.LogisticsStats, error) {
	stats := &models.LogisticsStats{
		ByServiceType:        []models.ServiceTypeStats{},
		UpcomingAppointments: []models.LogisticsEntry{},
	}
	for _, e := range f.logistics {
		stats.Overall.TotalServices++
		stats.Overall.TotalCost += e.Cost
	}
	return stats, nil
}

func (f *fakeStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	for _, r := range f.rooms {
		if r.Name == room.Name {
			return nil, db.ErrDuplicate
		}
	}
	room.ID = f.nextID
	f.nextID++
	f.rooms[room.ID] = room
	return &room, nil
}

func (f *fakeStore) UpdateRoom(ctx context.Context, id int, room models.Room) (*models.Room, error) {
	if _, ok := f.rooms[id]; !ok {
		return nil, db.ErrNotFound
	}
	for otherID, r := range f.rooms {
		if otherID != id && r.Name == room.Name {
			return nil, db.ErrDuplicate
		}
	}
	room.ID = id
	f.rooms[id] = room
	return &room, nil
}

func (f *fakeStore) DeleteRoom(ctx context.Context, id int) error {
	if _, ok := f.rooms[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.rooms, id)
	for itemID, it := range f.items {
		if it.RoomID == id {
			delete(f.items, itemID)
		}
	}
	return nil
}

func (f *fakeStore) ListPriorities(ctx context.Context) ([]models.PriorityLevel, error) {
	return f.priorities, nil
}

func (f *fakeStore) PriorityExists(ctx context.Context, name string) (bool, error) {
	for _, p := range f.priorities {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetSettings(ctx context.Context) (map[string]string, error) {
	return f.settings, nil
}

func (f *fakeStore) UpsertSetting(ctx context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func setupTest(t *testing.T) (*fakeStore, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	handler := NewHandler(store, zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router)
	return store, router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateItemAppliesDefaults(t *testing.T) {
	store, router := setupTest(t)
	store.rooms[1] = models.Room{ID: 1, Name: "Kitchen"}

	w := doJSON(t, router, http.MethodPost, "/api/items", map[string]interface{}{
		"name":    "Fridge",
		"room_id": 1,
		"cost":    1200,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Needed", created.Status)
	assert.Equal(t, "must-have", created.Priority)
	assert.Equal(t, 1200.0, created.Cost)
}

func TestCreateItemMissingRequiredFields(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/items", map[string]interface{}{
		"category": "Furniture",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: name and room_id are required", errorMessage(t, w))
}

func TestCreateItemInvalidStatus(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/items", map[string]interface{}{
		"name":    "Sofa",
		"room_id": 1,
		"status":  "Wishlist",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		"Invalid status. Must be one of: Needed, Researching, Ready to Purchase, Ordered, Delivered, Completed",
		errorMessage(t, w))
}

func TestCreateItemUnknownPriority(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/items", map[string]interface{}{
		"name":     "Sofa",
		"room_id":  1,
		"priority": "ASAP",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid priority: ASAP. Must be one of the defined priorities.", errorMessage(t, w))
}

func TestUpdateItemAllowsPartialValidation(t *testing.T) {
	store, router := setupTest(t)
	store.items[5] = models.Item{ID: 5, Name: "Sofa", RoomID: 1, Status: "Needed", Priority: "Day 1"}

	// PUT does not require name/room_id to be re-validated as present, but
	// still rejects a bad status.
	w := doJSON(t, router, http.MethodPut, "/api/items/5", map[string]interface{}{
		"name":    "Sofa",
		"room_id": 1,
		"status":  "Bought",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItemNotFound(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/items/99", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found", errorMessage(t, w))
}

func TestListItemsEmptyIsArray(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/items", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListItemsStoreFailure(t *testing.T) {
	store, router := setupTest(t)
	store.failAll = true

	w := doJSON(t, router, http.MethodGet, "/api/items", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch items", errorMessage(t, w))
}

func TestDeleteItem(t *testing.T) {
	store, router := setupTest(t)
	store.items[3] = models.Item{ID: 3, Name: "Lamp", RoomID: 1}

	w := doJSON(t, router, http.MethodDelete, "/api/items/3", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.items, 3)

	w = doJSON(t, router, http.MethodDelete, "/api/items/3", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateLogisticsAppliesDefaults(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/logistics", map[string]interface{}{
		"service_type": "Internet",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.LogisticsEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pending", created.CompletionStatus)
	assert.Equal(t, "Normal", created.Priority)
}

func TestCreateLogisticsMissingServiceType(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/logistics", map[string]interface{}{
		"provider_name": "AusPost",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: service_type is required", errorMessage(t, w))
}

func TestCreateLogisticsInvalidCompletionStatus(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/logistics", map[string]interface{}{
		"service_type":      "Internet",
		"completion_status": "Done",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid completion_status. Must be one of: Pending, In Progress, Completed", errorMessage(t, w))
}

func TestCreateLogisticsFreeTextPriorityAccepted(t *testing.T) {
	_, router := setupTest(t)

	// Logistics priority is not checked against the priorities table.
	w := doJSON(t, router, http.MethodPost, "/api/logistics", map[string]interface{}{
		"service_type": "Gas",
		"priority":     "Whenever",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.LogisticsEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Whenever", created.Priority)
}

func TestCreateRoomDuplicateName(t *testing.T) {
	store, router := setupTest(t)
	store.rooms[1] = models.Room{ID: 1, Name: "Kitchen"}

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]interface{}{
		"name": "Kitchen",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Room name already exists", errorMessage(t, w))
	assert.Len(t, store.rooms, 1)
}

func TestCreateRoomMissingName(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]interface{}{
		"budget": 500,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room name is required", errorMessage(t, w))
}

func TestUpdateRoomRenameConflict(t *testing.T) {
	store, router := setupTest(t)
	store.rooms[1] = models.Room{ID: 1, Name: "Kitchen"}
	store.rooms[2] = models.Room{ID: 2, Name: "Laundry"}

	w := doJSON(t, router, http.MethodPut, "/api/rooms/2", map[string]interface{}{
		"name": "Kitchen",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateSettingEchoesKeyValue(t *testing.T) {
	store, router := setupTest(t)

	w := doJSON(t, router, http.MethodPut, "/api/settings/total_budget", map[string]interface{}{
		"value": "50000",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "total_budget", body["key"])
	assert.Equal(t, "50000", body["value"])
	assert.Equal(t, "50000", store.settings["total_budget"])
}

func TestGetSettingsReturnsFlatMap(t *testing.T) {
	store, router := setupTest(t)
	store.settings["total_budget"] = "50000"
	store.settings["theme"] = "dark"

	w := doJSON(t, router, http.MethodGet, "/api/settings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"total_budget": "50000", "theme": "dark"}, body)
}

func TestListPriorities(t *testing.T) {
	_, router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/priorities", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var priorities []models.PriorityLevel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &priorities))
	require.Len(t, priorities, 3)
	assert.Equal(t, "Day 1", priorities[0].Name)
}

func TestHealthCheck(t *testing.T) {
	store, router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	store.healthErr = errStore
	w = doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
