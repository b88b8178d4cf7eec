// Package client is a Go client for the planner service API, with a
// state container mirroring the collections the UI works from.
package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// APIError carries the server's error message and HTTP status for a failed
// request.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// Client talks to the planner service REST API.
type Client struct {
	http *resty.Client
}

// New creates a client for the API rooted at baseURL, which should include
// the /api prefix (e.g. "http://localhost:8080/api").
func New(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{http: httpClient}
}

// ItemListOptions are the query filters of GET /items. Zero values are
// omitted from the request.
type ItemListOptions struct {
	RoomID   int
	Category string
	Status   string
	Priority string
	Search   string
}

func (o ItemListOptions) queryParams() map[string]string {
	params := map[string]string{}
	if o.RoomID != 0 {
		params["room_id"] = strconv.Itoa(o.RoomID)
	}
	if o.Category != "" {
		params["category"] = o.Category
	}
	if o.Status != "" {
		params["status"] = o.Status
	}
	if o.Priority != "" {
		params["priority"] = o.Priority
	}
	if o.Search != "" {
		params["search"] = o.Search
	}
	return params
}

// LogisticsListOptions are the query filters of GET /logistics.
type LogisticsListOptions struct {
	ServiceType      string
	CompletionStatus string
}

func (o LogisticsListOptions) queryParams() map[string]string {
	params := map[string]string{}
	if o.ServiceType != "" {
		params["service_type"] = o.ServiceType
	}
	if o.CompletionStatus != "" {
		params["completion_status"] = o.CompletionStatus
	}
	return params
}

func apiErr(resp *resty.Response) error {
	apiError, ok := resp.Error().(*APIError)
	if !ok || apiError == nil {
		apiError = &APIError{}
	}
	apiError.StatusCode = resp.StatusCode()
	return apiError
}

// ListItems fetches items matching the given filters.
func (c *Client) ListItems(ctx context.Context, opts ItemListOptions) ([]models.Item, error) {
	var items []models.Item
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(opts.queryParams()).
		SetResult(&items).
		SetError(&APIError{}).
		Get("/items")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return items, nil
}

// GetItem fetches a single item.
func (c *Client) GetItem(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&item).
		SetError(&APIError{}).
		Get(fmt.Sprintf("/items/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &item, nil
}

// CreateItem creates an item and returns the stored record.
func (c *Client) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	var created models.Item
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(item).
		SetResult(&created).
		SetError(&APIError{}).
		Post("/items")
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &created, nil
}

// UpdateItem replaces an item and returns the stored record.
func (c *Client) UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	var updated models.Item
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(item).
		SetResult(&updated).
		SetError(&APIError{}).
		Put(fmt.Sprintf("/items/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &updated, nil
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		Delete(fmt.Sprintf("/items/%d", id))
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if resp.IsError() {
		return apiErr(resp)
	}
	return nil
}

// ItemStats fetches the item statistics report.
func (c *Client) ItemStats(ctx context.Context) (*models.ItemStats, error) {
	var stats models.ItemStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		SetError(&APIError{}).
		Get("/items/stats")
	if err != nil {
		return nil, fmt.Errorf("item stats: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &stats, nil
}

// ListLogistics fetches logistics entries matching the given filters.
func (c *Client) ListLogistics(ctx context.Context, opts LogisticsListOptions) ([]models.LogisticsEntry, error) {
	var entries []models.LogisticsEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(opts.queryParams()).
		SetResult(&entries).
		SetError(&APIError{}).
		Get("/logistics")
	if err != nil {
		return nil, fmt.Errorf("list logistics: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return entries, nil
}

// GetLogisticsEntry fetches a single logistics entry.
func (c *Client) GetLogisticsEntry(ctx context.Context, id int) (*models.LogisticsEntry, error) {
	var entry models.LogisticsEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entry).
		SetError(&APIError{}).
		Get(fmt.Sprintf("/logistics/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get logistics entry %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &entry, nil
}

// CreateLogisticsEntry creates a logistics entry and returns the stored record.
func (c *Client) CreateLogisticsEntry(ctx context.Context, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	var created models.LogisticsEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(entry).
		SetResult(&created).
		SetError(&APIError{}).
		Post("/logistics")
	if err != nil {
		return nil, fmt.Errorf("create logistics entry: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &created, nil
}

// UpdateLogisticsEntry replaces a logistics entry and returns the stored record.
func (c *Client) UpdateLogisticsEntry(ctx context.Context, id int, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	var updated models.LogisticsEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(entry).
		SetResult(&updated).
		SetError(&APIError{}).
		Put(fmt.Sprintf("/logistics/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update logistics entry %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &updated, nil
}

// DeleteLogisticsEntry deletes a logistics entry.
func (c *Client) DeleteLogisticsEntry(ctx context.Context, id int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		Delete(fmt.Sprintf("/logistics/%d", id))
	if err != nil {
		return fmt.Errorf("delete logistics entry %d: %w", id, err)
	}
	if resp.IsError() {
		return apiErr(resp)
	}
	return nil
}

// LogisticsStats fetches the logistics statistics report.
func (c *Client) LogisticsStats(ctx context.Context) (*models.LogisticsStats, error) {
	var stats models.LogisticsStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		SetError(&APIError{}).
		Get("/logistics/stats")
	if err != nil {
		return nil, fmt.Errorf("logistics stats: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &stats, nil
}

// ListRooms fetches all rooms.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rooms).
		SetError(&APIError{}).
		Get("/rooms")
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return rooms, nil
}

// CreateRoom creates a room and returns the stored record.
func (c *Client) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	var created models.Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(room).
		SetResult(&created).
		SetError(&APIError{}).
		Post("/rooms")
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &created, nil
}

// UpdateRoom replaces a room and returns the stored record.
func (c *Client) UpdateRoom(ctx context.Context, id int, room models.Room) (*models.Room, error) {
	var updated models.Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(room).
		SetResult(&updated).
		SetError(&APIError{}).
		Put(fmt.Sprintf("/rooms/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return &updated, nil
}

// DeleteRoom deletes a room. Its items are removed with it.
func (c *Client) DeleteRoom(ctx context.Context, id int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		Delete(fmt.Sprintf("/rooms/%d", id))
	if err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	if resp.IsError() {
		return apiErr(resp)
	}
	return nil
}

// ListPriorities fetches all priority levels in sort order.
func (c *Client) ListPriorities(ctx context.Context) ([]models.PriorityLevel, error) {
	var priorities []models.PriorityLevel
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&priorities).
		SetError(&APIError{}).
		Get("/priorities")
	if err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return priorities, nil
}

// GetSettings fetches the full settings map.
func (c *Client) GetSettings(ctx context.Context) (map[string]string, error) {
	var settings map[string]string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&settings).
		SetError(&APIError{}).
		Get("/settings")
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if resp.IsError() {
		return nil, apiErr(resp)
	}
	return settings, nil
}

// UpdateSetting upserts one setting value.
func (c *Client) UpdateSetting(ctx context.Context, key, value string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"value": value}).
		SetError(&APIError{}).
		Put("/settings/" + key)
	if err != nil {
		return fmt.Errorf("update setting %q: %w", key, err)
	}
	if resp.IsError() {
		return apiErr(resp)
	}
	return nil
}
