package policy

import (
	"testing"

	"github.com/coverdesk/api-operations/internal/company"
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
	require.NoError(t, db.AutoMigrate(&company.Company{}, &Policy{}))
	return db
}

func TestListFlattensCompanyName(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	c := company.Company{Name: "Acme Insurance", Status: company.StatusActive}
	require.NoError(t, db.Create(&c).Error)
	p := Policy{CompanyID: c.ID, PolicyNumber: "POL-1-2026", ProductType: "health", Status: StatusActive, Premium: 1200}
	require.NoError(t, repo.Save(db, &p))

	rows, err := repo.List(db, query.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Insurance", rows[0].CompanyName)
	assert.Equal(t, "POL-1-2026", rows[0].PolicyNumber)
	assert.Equal(t, c.ID, rows[0].CompanyID)
}

func TestListFiltersQualifiedStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	c := company.Company{Name: "Acme", Status: company.StatusInactive}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, repo.Save(db, &Policy{CompanyID: c.ID, PolicyNumber: "A", Status: StatusActive}))
	require.NoError(t, repo.Save(db, &Policy{CompanyID: c.ID, PolicyNumber: "B", Status: StatusCancelled}))

	// Qualified filter must not collide with companies.status.
	rows, err := repo.List(db, query.Options{Filters: map[string]string{"policies.status": StatusActive}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].PolicyNumber)
}

func TestCreateGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()
	c := company.Company{Name: "Acme"}
	require.NoError(t, db.Create(&c).Error)

	in := Policy{CompanyID: c.ID, PolicyNumber: "POL-9", ProductType: "dental", Provider: "Globex Re", Premium: 340.5, Status: StatusPendingApproval, CoveredEmployees: 12}
	require.NoError(t, repo.Save(db, &in))

	got, err := repo.GetByID(db, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.PolicyNumber, got.PolicyNumber)
	assert.Equal(t, in.Provider, got.Provider)
	assert.Equal(t, in.Premium, got.Premium)
	assert.Equal(t, in.CoveredEmployees, got.CoveredEmployees)
}

func TestDeleteIdempotence(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()
	p := Policy{CompanyID: 1, PolicyNumber: "X"}
	require.NoError(t, repo.Save(db, &p))

	require.NoError(t, repo.Delete(db, p.ID))
	assert.ErrorIs(t, repo.Delete(db, p.ID), gorm.ErrRecordNotFound)
}
