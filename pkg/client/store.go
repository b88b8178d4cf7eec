package client

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nestready/nestready/backend/planner-service/internal/models"
)

// Store caches the fetched collections in memory. Every mutation merges the
// server's returned record into the cache and then refetches the matching
// stats report, so cached aggregates always reflect a full round-trip rather
// than a local recomputation. A failed mutation leaves the cache untouched
// and returns the server's error.
type Store struct {
	client *Client

	mu             sync.RWMutex
	items          []models.Item
	logistics      []models.LogisticsEntry
	rooms          []models.Room
	priorities     []models.PriorityLevel
	settings       map[string]string
	itemStats      *models.ItemStats
	logisticsStats *models.LogisticsStats
}

// NewStore creates an empty store backed by the given API client.
func NewStore(c *Client) *Store {
	return &Store{
		client:   c,
		settings: map[string]string{},
	}
}

// RefreshAll loads every collection concurrently. It returns the first error
// encountered; collections fetched successfully before the failure are kept.
func (s *Store) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.RefreshItems(ctx, ItemListOptions{}) })
	g.Go(func() error { return s.RefreshLogistics(ctx, LogisticsListOptions{}) })
	g.Go(func() error { return s.RefreshRooms(ctx) })
	g.Go(func() error { return s.RefreshPriorities(ctx) })
	g.Go(func() error { return s.RefreshSettings(ctx) })
	g.Go(func() error { return s.refreshItemStats(ctx) })
	g.Go(func() error { return s.refreshLogisticsStats(ctx) })

	return g.Wait()
}

// RefreshItems replaces the cached item collection.
func (s *Store) RefreshItems(ctx context.Context, opts ItemListOptions) error {
	items, err := s.client.ListItems(ctx, opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// RefreshLogistics replaces the cached logistics collection.
func (s *Store) RefreshLogistics(ctx context.Context, opts LogisticsListOptions) error {
	entries, err := s.client.ListLogistics(ctx, opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.logistics = entries
	s.mu.Unlock()
	return nil
}

// RefreshRooms replaces the cached room collection.
func (s *Store) RefreshRooms(ctx context.Context) error {
	rooms, err := s.client.ListRooms(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rooms = rooms
	s.mu.Unlock()
	return nil
}

// RefreshPriorities replaces the cached priority levels.
func (s *Store) RefreshPriorities(ctx context.Context) error {
	priorities, err := s.client.ListPriorities(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.priorities = priorities
	s.mu.Unlock()
	return nil
}

// RefreshSettings replaces the cached settings map.
func (s *Store) RefreshSettings(ctx context.Context) error {
	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = map[string]string{}
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

func (s *Store) refreshItemStats(ctx context.Context) error {
	stats, err := s.client.ItemStats(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.itemStats = stats
	s.mu.Unlock()
	return nil
}

func (s *Store) refreshLogisticsStats(ctx context.Context) error {
	stats, err := s.client.LogisticsStats(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.logisticsStats = stats
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the cached item collection.
func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Logistics returns a copy of the cached logistics collection.
func (s *Store) Logistics() []models.LogisticsEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LogisticsEntry, len(s.logistics))
	copy(out, s.logistics)
	return out
}

// Rooms returns a copy of the cached room collection.
func (s *Store) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Priorities returns a copy of the cached priority levels.
func (s *Store) Priorities() []models.PriorityLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PriorityLevel, len(s.priorities))
	copy(out, s.priorities)
	return out
}

// Settings returns a copy of the cached settings map.
func (s *Store) Settings() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

// ItemStats returns the last fetched item statistics report, or nil before
// the first refresh.
func (s *Store) ItemStats() *models.ItemStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemStats
}

// LogisticsStats returns the last fetched logistics statistics report, or nil
// before the first refresh.
func (s *Store) LogisticsStats() *models.LogisticsStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logisticsStats
}

// CreateItem creates an item, prepends the stored record to the cache and
// refetches item stats.
func (s *Store) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	created, err := s.client.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]models.Item{*created}, s.items...)
	s.mu.Unlock()

	if err := s.refreshItemStats(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// UpdateItem replaces an item, merges the stored record into the cache and
// refetches item stats.
func (s *Store) UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	updated, err := s.client.UpdateItem(ctx, id, item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	if err := s.refreshItemStats(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteItem deletes an item, drops it from the cache and refetches item
// stats.
func (s *Store) DeleteItem(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()

	return s.refreshItemStats(ctx)
}

// CreateLogistics creates a logistics entry, prepends it to the cache and
// refetches logistics stats.
func (s *Store) CreateLogistics(ctx context.Context, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	created, err := s.client.CreateLogisticsEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logistics = append([]models.LogisticsEntry{*created}, s.logistics...)
	s.mu.Unlock()

	if err := s.refreshLogisticsStats(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// UpdateLogistics replaces a logistics entry, merges it into the cache and
// refetches logistics stats.
func (s *Store) UpdateLogistics(ctx context.Context, id int, entry models.LogisticsEntry) (*models.LogisticsEntry, error) {
	updated, err := s.client.UpdateLogisticsEntry(ctx, id, entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.logistics {
		if s.logistics[i].ID == id {
			s.logistics[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	if err := s.refreshLogisticsStats(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteLogistics deletes a logistics entry, drops it from the cache and
// refetches logistics stats.
func (s *Store) DeleteLogistics(ctx context.Context, id int) error {
	if err := s.client.DeleteLogisticsEntry(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.logistics[:0]
	for _, e := range s.logistics {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.logistics = kept
	s.mu.Unlock()

	return s.refreshLogisticsStats(ctx)
}

// CreateRoom creates a room and inserts it into the cache, keeping the
// collection sorted by name.
func (s *Store) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	created, err := s.client.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rooms = append(s.rooms, *created)
	sort.Slice(s.rooms, func(i, j int) bool { return s.rooms[i].Name < s.rooms[j].Name })
	s.mu.Unlock()

	return created, nil
}

// UpdateRoom replaces a room and merges it into the cache, keeping the
// collection sorted by name.
func (s *Store) UpdateRoom(ctx context.Context, id int, room models.Room) (*models.Room, error) {
	updated, err := s.client.UpdateRoom(ctx, id, room)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			s.rooms[i] = *updated
			break
		}
	}
	sort.Slice(s.rooms, func(i, j int) bool { return s.rooms[i].Name < s.rooms[j].Name })
	s.mu.Unlock()

	return updated, nil
}

// DeleteRoom deletes a room, drops it and its items from the cache and
// refetches item stats, since the cascade changes them.
func (s *Store) DeleteRoom(ctx context.Context, id int) error {
	if err := s.client.DeleteRoom(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	keptRooms := s.rooms[:0]
	for _, r := range s.rooms {
		if r.ID != id {
			keptRooms = append(keptRooms, r)
		}
	}
	s.rooms = keptRooms

	keptItems := s.items[:0]
	for _, it := range s.items {
		if it.RoomID != id {
			keptItems = append(keptItems, it)
		}
	}
	s.items = keptItems
	s.mu.Unlock()

	return s.refreshItemStats(ctx)
}

// UpdateSetting upserts one setting and merges it into the cached map.
func (s *Store) UpdateSetting(ctx context.Context, key, value string) error {
	if err := s.client.UpdateSetting(ctx, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings[key] = value
	s.mu.Unlock()
	return nil
}
