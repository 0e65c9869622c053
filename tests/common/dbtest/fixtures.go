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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestMember(t *testing.T, db DBLike, email, role string) uuid.UUID {
	return CreateTestMemberWithStanding(t, db, email, role, "active")
}

func CreateTestMemberWithStanding(t *testing.T, db DBLike, email, role, standing string) uuid.UUID {
	t.Helper()

	memberID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO members (id, email, role, standing) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		memberID, email, role, standing)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM members WHERE email = $1", email).Scan(&memberID)
	}

	return memberID
}

func CreateTestResource(t *testing.T, db DBLike, name string, granularityMin int) uuid.UUID {
	return CreateTestResourceWithFeed(t, db, name, granularityMin, "")
}

func CreateTestResourceWithFeed(t *testing.T, db DBLike, name string, granularityMin int, busyFeedURL string) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	ctx := context.Background()

	var feed *string
	if busyFeedURL != "" {
		feed = &busyFeedURL
	}

	_, err := db.Exec(ctx,
		`INSERT INTO resources (id, name, open_hour, close_hour, slot_granularity_min, timezone, busy_feed_url)
		 VALUES ($1, $2, 8, 22, $3, 'UTC', $4)`,
		resourceID, name, granularityMin, feed)
	require.NoError(t, err)

	return resourceID
}

func CreateTestReservation(t *testing.T, db DBLike, resourceID, memberID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO reservations (id, resource_id, member_id, slot, status)
		 VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6)`,
		reservationID, resourceID, memberID, start, end, status)
	require.NoError(t, err)

	return reservationID
}

func WaitlistEntryStatus(t *testing.T, db DBLike, entryID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM waitlist_entries WHERE id = $1", entryID).Scan(&status)
	require.NoError(t, err)
	return status
}

func ReservationStatus(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM reservations WHERE id = $1", reservationID).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
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
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
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
	return nil
}
