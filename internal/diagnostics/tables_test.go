package diagnostics

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestCheckTablesReportsMissing(t *testing.T) {
	db := openTestDB(t)
	for _, stmt := range []string{
		"CREATE TABLE companies (id INTEGER PRIMARY KEY)",
		"CREATE TABLE policies (id INTEGER PRIMARY KEY)",
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	got := CheckTables(db, []string{"companies", "policies", "renewals"})
	byTable := map[string]TableStatus{}
	for _, st := range got {
		byTable[st.Table] = st
	}

	assert.True(t, byTable["companies"].Exists)
	assert.True(t, byTable["policies"].Exists)
	assert.False(t, byTable["renewals"].Exists)
	assert.Empty(t, byTable["renewals"].Err)
}

func TestIsMissingRelation(t *testing.T) {
	assert.True(t, isMissingRelation(&pgconn.PgError{Code: "42P01", Message: `relation "renewals" does not exist`}))
	// A permission error is NOT "missing": the table exists but errored.
	assert.False(t, isMissingRelation(&pgconn.PgError{Code: "42501", Message: "permission denied"}))
}

func TestGenerateSQL(t *testing.T) {
	out := GenerateSQL([]string{"renewals", "activities", "nonexistent"})
	assert.Contains(t, out, "CREATE TABLE renewals")
	assert.Contains(t, out, "CREATE TABLE activities")
	assert.NotContains(t, out, "nonexistent")

	assert.Empty(t, GenerateSQL(nil))
}
