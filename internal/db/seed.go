package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type seedItem struct {
	Name     string
	Category string
	Cost     float64
	Priority string
	Vendor   string
}

type seedLogistics struct {
	ServiceType  string
	ProviderName string
	Priority     string
	Notes        string
}

var defaultPriorities = []struct {
	Name      string
	SortOrder int
}{
	{"Day 1", 10},
	{"Week 1", 20},
	{"Week 2", 30},
	{"Month 1", 40},
	{"Later", 50},
}

var defaultRooms = []struct {
	Name   string
	Budget float64
}{
	{"Living Room", 5000},
	{"Dining Room", 3000},
	{"Kitchen", 2000},
	{"Master Bedroom", 4000},
	{"Bedroom 2", 2000},
	{"Bedroom 3", 2000},
	{"Bathroom", 1000},
	{"Ensuite", 1000},
	{"Laundry", 1500},
	{"Garage", 1000},
	{"Outdoor/Patio", 3000},
	{"Study/Office", 2500},
	{"Hallway", 500},
	{"Home Theatre", 6000},
}

var defaultItems = map[string][]seedItem{
	"Living Room": {
		{"Sofa", "Furniture", 1500, "Day 1", "IKEA"},
		{"Coffee Table", "Furniture", 300, "Week 1", "IKEA"},
		{"TV Unit", "Furniture", 400, "Week 1", "IKEA"},
		{"Area Rug", "Decor", 200, "Month 1", "Kmart"},
		{"Curtains/Blinds", "Decor", 500, "Day 1", "Bunnings"},
		{"Floor Lamp", "Lighting", 100, "Month 1", "Target"},
	},
	"Dining Room": {
		{"Dining Table", "Furniture", 800, "Day 1", "IKEA"},
		{"Dining Chairs (x6)", "Furniture", 600, "Day 1", "IKEA"},
		{"Buffet/Sideboard", "Furniture", 500, "Month 1", "IKEA"},
	},
	"Kitchen": {
		{"Refrigerator", "Appliances", 1200, "Day 1", "Harvey Norman"},
		{"Microwave", "Appliances", 150, "Day 1", "Kmart"},
		{"Bar Stools (x3)", "Furniture", 300, "Month 1", "IKEA"},
		{"Dish Rack", "Accessories", 50, "Day 1", "Kmart"},
		{"Trash Bin", "Accessories", 80, "Day 1", "Bunnings"},
		{"Pots & Pans Set", "Cookware", 300, "Day 1", "Kogan"},
		{"Cutlery Set", "Tableware", 100, "Day 1", "IKEA"},
		{"Knife Block", "Cookware", 150, "Day 1", "Kogan"},
		{"Utensil Set", "Cookware", 50, "Day 1", "Kmart"},
		{"Chopping Boards", "Cookware", 40, "Day 1", "Kmart"},
		{"Food Containers", "Storage", 50, "Week 1", "Kmart"},
		{"Meal Prep Containers", "Storage", 40, "Week 1", "Kmart"},
		{"Air Fryer", "Appliances", 200, "Week 1", "Kogan"},
		{"Rice Cooker", "Appliances", 100, "Week 1", "Kogan"},
		{"Toaster", "Appliances", 80, "Day 1", "Kmart"},
		{"Kettle", "Appliances", 60, "Day 1", "Kmart"},
		{"Dinner Set (Plates/Bowls)", "Tableware", 150, "Day 1", "IKEA"},
		{"Glassware Set", "Tableware", 60, "Day 1", "IKEA"},
		{"Mugs", "Tableware", 40, "Day 1", "Kmart"},
	},
	"Master Bedroom": {
		{"King Bed Frame", "Furniture", 800, "Day 1", "IKEA"},
		{"King Mattress", "Furniture", 1200, "Day 1", "Harvey Norman"},
		{"Bedside Tables (x2)", "Furniture", 200, "Week 1", "IKEA"},
		{"Dresser", "Furniture", 400, "Month 1", "IKEA"},
		{"Bedside Lamps (x2)", "Lighting", 100, "Month 1", "Kmart"},
		{"TV", "Electronics", 800, "Week 1", ""},
		{"Quilt/Doona", "Bedding", 200, "Day 1", ""},
		{"Quilt Cover Set", "Bedding", 100, "Day 1", ""},
		{"Sheet Set", "Bedding", 100, "Day 1", ""},
		{"Pillows (x2)", "Bedding", 80, "Day 1", ""},
		{"Mattress Protector", "Bedding", 50, "Day 1", ""},
	},
	"Bedroom 2": {
		{"Queen Bed Frame", "Furniture", 500, "Week 2", "IKEA"},
		{"Queen Mattress", "Furniture", 800, "Week 2", "Harvey Norman"},
		{"Bedside Table", "Furniture", 80, "Week 2", "IKEA"},
		{"Quilt/Doona", "Bedding", 150, "Week 2", "Target"},
		{"Quilt Cover Set", "Bedding", 80, "Week 2", "Target"},
		{"Sheet Set", "Bedding", 80, "Week 2", "Target"},
		{"Pillows (x2)", "Bedding", 60, "Week 2", "Target"},
	},
	"Bedroom 3": {
		{"Queen Bed Frame", "Furniture", 500, "Later", "IKEA"},
		{"Queen Mattress", "Furniture", 800, "Later", "Harvey Norman"},
		{"Bedside Table", "Furniture", 80, "Later", "IKEA"},
		{"Quilt/Doona", "Bedding", 150, "Later", "Target"},
		{"Quilt Cover Set", "Bedding", 80, "Later", "Target"},
		{"Sheet Set", "Bedding", 80, "Later", "Target"},
		{"Pillows (x2)", "Bedding", 60, "Later", "Target"},
	},
	"Bathroom": {
		{"Toilet Brush Holder", "Accessories", 20, "Week 1", "Kmart"},
		{"Bath Towels (x4)", "Linen", 100, "Day 1", "Target"},
		{"Hand Towels (x2)", "Linen", 30, "Day 1", "Target"},
		{"Bath Mat", "Linen", 30, "Day 1", "Target"},
		{"Shower Caddy", "Accessories", 40, "Week 1", "Kmart"},
		{"Waste Bin", "Accessories", 20, "Week 1", "Kmart"},
	},
	"Ensuite": {
		{"Toilet Brush Holder", "Accessories", 20, "Week 1", "Kmart"},
		{"Bath Towels (x2)", "Linen", 60, "Day 1", "Target"},
		{"Hand Towel", "Linen", 15, "Day 1", "Target"},
		{"Bath Mat", "Linen", 30, "Day 1", "Target"},
		{"Waste Bin", "Accessories", 20, "Week 1", "Kmart"},
	},
	"Laundry": {
		{"Washing Machine", "Appliances", 800, "Critical", "Harvey Norman"},
		{"Dryer", "Appliances", 600, "Month 1", "Harvey Norman"},
		{"Laundry Hamper", "Accessories", 30, "Week 1", "Kmart"},
		{"Vacuum Cleaner", "Appliances", 400, "Week 1", "Kmart"},
		{"Iron", "Appliances", 60, "Week 1", "Kmart"},
		{"Ironing Board", "Accessories", 50, "Week 1", "Kmart"},
		{"Mop & Bucket", "Cleaning", 40, "Day 1", "Bunnings"},
		{"Broom & Dustpan", "Cleaning", 30, "Day 1", "Bunnings"},
		{"Clothes Airer", "Accessories", 40, "Week 1", "Kmart"},
	},
	"Study/Office": {
		{"Office Desk", "Furniture", 300, "Week 1", "IKEA"},
		{"Ergonomic Chair", "Furniture", 250, "Week 1", "IKEA"},
		{"Monitor", "Electronics", 300, "Week 1", "Harvey Norman"},
		{"Bookshelf", "Furniture", 150, "Month 1", "IKEA"},
	},
	"Outdoor/Patio": {
		{"Outdoor Table Set", "Furniture", 800, "Later", "IKEA"},
		{"BBQ Grill", "Appliances", 500, "Later", "Bunnings"},
	},
	"Garage": {
		{"Shelving Unit", "Storage", 150, "Month 1", "Bunnings"},
		{"Workbench", "Furniture", 200, "Later", "Bunnings"},
	},
	"Hallway": {
		{"Runner Rug", "Decor", 80, "Month 1", "Kmart"},
		{"Console Table", "Furniture", 150, "Month 1", "IKEA"},
		{"Wall Art", "Decor", 100, "Later", "Kmart"},
	},
	"Home Theatre": {
		{"Projector / Large TV", "Electronics", 2500, "Month 1", "Harvey Norman"},
		{"Surround Sound System", "Electronics", 1500, "Month 1", "Harvey Norman"},
		{"Recliner Seats (x4)", "Furniture", 2000, "Month 1", "Harvey Norman"},
		{"Blackout Curtains", "Decor", 300, "Month 1", "Bunnings"},
		{"Popcorn Machine", "Appliances", 100, "Later", "Kogan"},
	},
}

var defaultLogistics = []seedLogistics{
	{"Electricity", "SA Power Networks (Distributor)", "Day 1",
		"Choose a retailer (AGL, Origin, etc.) and book connection for Day 1."},
	{"Gas", "Elgas / Kleenheat", "Day 1",
		"Check if you need LPG bottles ordered. Book delivery."},
	{"Water", "SA Water", "Day 1",
		"Ensure account is in your name."},
	{"Internet", "NBN Provider (AussieBB/Telstra)", "Day 1",
		"Book appointment. Hardware (modem) usually mailed to you."},
	{"Insurance", "Home & Contents", "Day 1",
		"Policy must start from the moment you settle/get keys."},
	{"Bins", "Victor Harbor Council", "Week 1",
		"Order General, Recycle, and Green bins if missing."},
	{"Mail", "AusPost", "Week 1",
		"Set up redirection."},
}

// Seed populates empty tables with the default household data set. Each batch
// runs in its own transaction and is skipped when its table already has rows.
// A failed batch is logged and does not stop the remaining batches.
func (db *Database) Seed(ctx context.Context) {
	if err := db.seedPriorities(ctx); err != nil {
		db.log.Warn("seeding priorities failed", zap.Error(err))
	}
	if err := db.seedRooms(ctx); err != nil {
		db.log.Warn("seeding rooms failed", zap.Error(err))
	}
	if err := db.seedItems(ctx); err != nil {
		db.log.Warn("seeding items failed", zap.Error(err))
	}
	if err := db.seedLogistics(ctx); err != nil {
		db.log.Warn("seeding logistics failed", zap.Error(err))
	}
	if err := db.seedSettings(ctx); err != nil {
		db.log.Warn("seeding settings failed", zap.Error(err))
	}
}

func (db *Database) tableEmpty(ctx context.Context, table string) (bool, error) {
	var count int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}

func (db *Database) seedPriorities(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "priorities")
	if err != nil || !empty {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin priorities seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range defaultPriorities {
		if _, err := tx.Exec(ctx, "INSERT INTO priorities (name, sort_order) VALUES ($1, $2)", p.Name, p.SortOrder); err != nil {
			return fmt.Errorf("insert priority %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit priorities seed: %w", err)
	}

	db.log.Info("seeded default priorities", zap.Int("count", len(defaultPriorities)))
	return nil
}

func (db *Database) seedRooms(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "rooms")
	if err != nil || !empty {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rooms seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range defaultRooms {
		if _, err := tx.Exec(ctx, "INSERT INTO rooms (name, budget) VALUES ($1, $2)", r.Name, r.Budget); err != nil {
			return fmt.Errorf("insert room %q: %w", r.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms seed: %w", err)
	}

	db.log.Info("seeded default rooms", zap.Int("count", len(defaultRooms)))
	return nil
}

func (db *Database) seedItems(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "furnishing_items")
	if err != nil || !empty {
		return err
	}

	rows, err := db.Pool.Query(ctx, "SELECT id, name FROM rooms")
	if err != nil {
		return fmt.Errorf("query rooms for item seed: %w", err)
	}
	roomIDs := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan room for item seed: %w", err)
		}
		roomIDs[name] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rooms for item seed: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin items seed: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO furnishing_items (
			name, room_id, category, description, cost, budget_allocated, status, priority, vendor
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	total := 0
	for roomName, items := range defaultItems {
		roomID, ok := roomIDs[roomName]
		if !ok {
			continue
		}
		for _, item := range items {
			var vendor *string
			if item.Vendor != "" {
				vendor = &item.Vendor
			}
			_, err := tx.Exec(ctx, insert,
				item.Name, roomID, item.Category, "Standard "+item.Name,
				item.Cost, item.Cost, "Needed", item.Priority, vendor)
			if err != nil {
				return fmt.Errorf("insert item %q: %w", item.Name, err)
			}
			total++
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit items seed: %w", err)
	}

	db.log.Info("seeded default furnishing items", zap.Int("count", total))
	return nil
}

func (db *Database) seedLogistics(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "logistics")
	if err != nil || !empty {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin logistics seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range defaultLogistics {
		_, err := tx.Exec(ctx,
			"INSERT INTO logistics (service_type, provider_name, priority, notes) VALUES ($1, $2, $3, $4)",
			l.ServiceType, l.ProviderName, l.Priority, l.Notes)
		if err != nil {
			return fmt.Errorf("insert logistics %q: %w", l.ServiceType, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit logistics seed: %w", err)
	}

	db.log.Info("seeded default logistics", zap.Int("count", len(defaultLogistics)))
	return nil
}

func (db *Database) seedSettings(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "settings")
	if err != nil || !empty {
		return err
	}

	if _, err := db.Pool.Exec(ctx, "INSERT INTO settings (key, value) VALUES ($1, $2)", "total_budget", "50000"); err != nil {
		return fmt.Errorf("insert total_budget: %w", err)
	}

	db.log.Info("seeded default settings")
	return nil
}
