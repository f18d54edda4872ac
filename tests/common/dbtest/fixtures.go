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

// bcrypt hash of "password123", the fixture password every test user shares.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, full_name, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, "Test User")
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestEquipment(t *testing.T, db DBLike, name, equipmentType string) uuid.UUID {
	t.Helper()

	equipmentID := uuid.New()
	serial := "SN-" + strings.ToUpper(uuid.NewString()[:8])
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO equipment (id, name, equipment_type, serial_number, hourly_rate, status, is_active) VALUES ($1, $2, $3, $4, 150.00, 'available', true)",
		equipmentID, name, equipmentType, serial)
	require.NoError(t, err)

	return equipmentID
}

func CreateTestSchedule(t *testing.T, db DBLike, equipmentID, createdBy uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	scheduleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO schedules (id, equipment_id, start_time, end_time, status, created_by) VALUES ($1, $2, $3, $4, $5, $6)",
		scheduleID, equipmentID, start, end, status, createdBy)
	require.NoError(t, err)

	return scheduleID
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

	return nil
}
