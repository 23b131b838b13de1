//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestExperience(t *testing.T, db DBLike, title string, price int64) int64 {
	t.Helper()

	var id int64
	ctx := context.Background()
	err := db.QueryRow(ctx, `
		INSERT INTO experiences (title, description, price, location, image_url)
		VALUES ($1, 'Test experience', $2, 'Testville', '/images/test.jpg')
		RETURNING id`,
		title, price).Scan(&id)
	require.NoError(t, err)

	return id
}

func CreateTestSlot(t *testing.T, db DBLike, experienceID int64, totalSpots, spotsAvailable int32) int64 {
	t.Helper()

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	var id int64
	ctx := context.Background()
	err := db.QueryRow(ctx, `
		INSERT INTO slots (experience_id, start_time, end_time, total_spots, spots_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		experienceID, start, start.Add(time.Hour), totalSpots, spotsAvailable).Scan(&id)
	require.NoError(t, err)

	return id
}

func SlotSpotsAvailable(t *testing.T, db DBLike, slotID int64) int32 {
	t.Helper()

	var spots int32
	err := db.QueryRow(context.Background(),
		"SELECT spots_available FROM slots WHERE id = $1", slotID).Scan(&spots)
	require.NoError(t, err)

	return spots
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO promo_codes (code, kind, value) VALUES
		    ('SAVE10', 'percentage', 10),
		    ('FLAT100', 'fixed', 100)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
