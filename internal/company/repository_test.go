package company

import (
	"testing"

	"github.com/coverdesk/api-operations/internal/query"
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
	require.NoError(t, db.AutoMigrate(&Company{}))
	return db
}

func TestCreateGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	in := Company{Name: "Acme Insurance", Industry: "tech", EmployeeCount: 120, Country: "DE", Status: StatusActive}
	require.NoError(t, repo.Save(db, &in))
	require.NotZero(t, in.ID)

	got, err := repo.GetByID(db, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Industry, got.Industry)
	assert.Equal(t, in.EmployeeCount, got.EmployeeCount)
	assert.Equal(t, in.Country, got.Country)
	assert.Equal(t, in.Status, got.Status)
}

func TestListFilterAndSearch(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()
	seed := []Company{
		{Name: "Acme Insurance", Status: StatusActive, Country: "DE"},
		{Name: "Globex", Status: StatusActive, Country: "FR"},
		{Name: "acme re", Status: StatusInactive, Country: "DE"},
	}
	for i := range seed {
		require.NoError(t, repo.Save(db, &seed[i]))
	}

	got, err := repo.List(db, query.Options{Filters: map[string]string{"status": StatusActive}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(db, query.Options{Search: "acme"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpdateKeepsStatusWhenOmitted(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()
	c := Company{Name: "Acme", Status: StatusActive}
	require.NoError(t, repo.Save(db, &c))

	updated, err := repo.Update(db, c.ID, &Company{Name: "Acme GmbH"})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", updated.Name)
	assert.Equal(t, StatusActive, updated.Status)
}

func TestDeleteTwiceErrsSecondTime(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()
	c := Company{Name: "Acme"}
	require.NoError(t, repo.Save(db, &c))

	require.NoError(t, repo.Delete(db, c.ID))
	err := repo.Delete(db, c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
