package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp time.Time     `json:"timestamp"`
	Database  DatabaseStats `json:"database"`
	Content   ContentStats  `json:"content"`
}

type DatabaseStats struct {
	Type              string           `json:"type"`
	TotalRecords      int64            `json:"total_records"`
	TableStats        []TableStat      `json:"table_stats"`
	LocationsByReason map[string]int64 `json:"locations_by_reason"`
}

type TableStat struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

// ContentStats reports how much of the imported data fell back to the
// "unknown" sentinels and how many composers still only have their import locations
type ContentStats struct {
	UnknownPlaceCities      int64 `json:"unknown_place_cities"`
	UnknownBirthDates       int64 `json:"unknown_birth_dates"`
	UnknownDeathDates       int64 `json:"unknown_death_dates"`
	ComposersWithoutTravels int64 `json:"composers_without_travels"`
}

var tables = []string{"users", "cities", "composers", "locations"}

type Collector struct {
	db     *sqlx.DB
	config config.DBConfig
}

func NewCollector(db *sqlx.DB, cfg config.DBConfig) *Collector {
	return &Collector{db: db, config: cfg}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Timestamp: time.Now(),
	}

	dbStats, err := c.collectDatabaseStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Database = *dbStats

	content, err := c.collectContentStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Content = *content

	return stats, nil
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type: string(c.config.Type),
	}

	for _, table := range tables {
		var count int64
		if err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats.TableStats = append(stats.TableStats, TableStat{Name: table, RowCount: count})
		stats.TotalRecords += count
	}

	byReason, err := c.getLocationsByReason(ctx)
	if err != nil {
		return nil, err
	}
	stats.LocationsByReason = byReason

	return stats, nil
}

// getLocationsByReason counts locations per reason. Reasons without rows are reported as zero.
func (c *Collector) getLocationsByReason(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Reason string `db:"reason"`
		Count  int64  `db:"count"`
	}
	err := c.db.SelectContext(ctx, &rows, "SELECT reason, COUNT(*) AS count FROM locations GROUP BY reason")
	if err != nil {
		return nil, fmt.Errorf("failed to count locations by reason: %w", err)
	}

	counts := make(map[string]int64, len(model.Reasons))
	for _, reason := range model.Reasons {
		counts[string(reason)] = 0
	}
	for _, row := range rows {
		counts[row.Reason] = row.Count
	}
	return counts, nil
}

func (c *Collector) collectContentStats(ctx context.Context) (*ContentStats, error) {
	content := &ContentStats{}

	unknown := model.UnknownCoordinate
	err := c.db.GetContext(ctx, &content.UnknownPlaceCities,
		c.db.Rebind("SELECT COUNT(*) FROM cities WHERE latitude = ? AND longitude = ?"),
		unknown.Latitude, unknown.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to count unknown cities: %w", err)
	}

	err = c.db.GetContext(ctx, &content.UnknownBirthDates,
		c.db.Rebind("SELECT COUNT(*) FROM composers WHERE birthdate = ?"), model.UnknownDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count unknown birth dates: %w", err)
	}

	err = c.db.GetContext(ctx, &content.UnknownDeathDates,
		c.db.Rebind("SELECT COUNT(*) FROM composers WHERE deathdate = ?"), model.UnknownDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count unknown death dates: %w", err)
	}

	err = c.db.GetContext(ctx, &content.ComposersWithoutTravels,
		c.db.Rebind(`
			SELECT COUNT(*) FROM composers c
			WHERE NOT EXISTS (
				SELECT 1 FROM locations l
				WHERE l.composer_id = c.id AND l.reason NOT IN (?, ?)
			)`),
		model.ReasonBirth, model.ReasonDeath)
	if err != nil {
		return nil, fmt.Errorf("failed to count composers without travels: %w", err)
	}

	return content, nil
}
