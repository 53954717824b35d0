package quote

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coverdesk/api-operations/internal/activity"
	"github.com/coverdesk/api-operations/internal/deal"
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
	require.NoError(t, db.AutoMigrate(&Quote{}, &deal.Deal{}, &activity.Activity{}))
	return db
}

func seedQuoteWithDeal(t *testing.T, db *gorm.DB, status string) (*Quote, *deal.Deal) {
	t.Helper()
	q := &Quote{Reference: NewReference(), CompanyID: 1, ProductType: "health", Status: status}
	require.NoError(t, db.Create(q).Error)
	d := &deal.Deal{CompanyID: 1, QuoteID: &q.ID, Stage: deal.StageQuote}
	require.NoError(t, db.Create(d).Error)
	return q, d
}

func countActivities(t *testing.T, db *gorm.DB, quoteID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&activity.Activity{}).
		Where("entity_type = ? AND entity_id = ?", "quote", quoteID).Count(&n).Error)
	return n
}

func TestUpdateStatusWritesOneActivityAndMovesDeal(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	q, d := seedQuoteWithDeal(t, db, StatusPending)

	updated, err := svc.UpdateStatus(db, q.ID, StatusAccepted, 9)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, updated.Status)

	assert.EqualValues(t, 1, countActivities(t, db, q.ID))

	var gotDeal deal.Deal
	require.NoError(t, db.First(&gotDeal, d.ID).Error)
	assert.Equal(t, deal.StageClosedWon, gotDeal.Stage)

	var act activity.Activity
	require.NoError(t, db.Where("entity_id = ?", q.ID).First(&act).Error)
	assert.Equal(t, uint(9), act.ActorID)
	assert.False(t, act.System)
	assert.True(t, strings.Contains(act.Description, StatusPending))
	assert.True(t, strings.Contains(act.Description, StatusAccepted))
}

func TestUpdateStatusUnchangedIsNoop(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	q, d := seedQuoteWithDeal(t, db, StatusAccepted)

	_, err := svc.UpdateStatus(db, q.ID, StatusAccepted, 9)
	require.NoError(t, err)

	assert.EqualValues(t, 0, countActivities(t, db, q.ID))
	var gotDeal deal.Deal
	require.NoError(t, db.First(&gotDeal, d.ID).Error)
	assert.Equal(t, deal.StageQuote, gotDeal.Stage)
}

func TestUpdateStatusRepeatAddsNoSecondActivity(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	q, _ := seedQuoteWithDeal(t, db, StatusPending)

	_, err := svc.UpdateStatus(db, q.ID, StatusAccepted, 9)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(db, q.ID, StatusAccepted, 9)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countActivities(t, db, q.ID))
}

func TestUpdateStatusWithoutLinkedDeal(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	q := &Quote{Reference: NewReference(), CompanyID: 2, Status: StatusDraft}
	require.NoError(t, db.Create(q).Error)

	updated, err := svc.UpdateStatus(db, q.ID, StatusRejected, 0)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Status)
	assert.EqualValues(t, 1, countActivities(t, db, q.ID))

	var act activity.Activity
	require.NoError(t, db.Where("entity_id = ?", q.ID).First(&act).Error)
	assert.True(t, act.System)
}

// wrappingDealRepo decorates GetByQuote's not-found with extra context, as a
// caller-side wrapper would.
type wrappingDealRepo struct {
	deal.Repository
}

func (r wrappingDealRepo) GetByQuote(db *gorm.DB, quoteID uint) (*deal.Deal, error) {
	d, err := r.Repository.GetByQuote(db, quoteID)
	if err != nil {
		return nil, fmt.Errorf("deal for quote %d: %w", quoteID, err)
	}
	return d, nil
}

func TestUpdateStatusToleratesWrappedNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	svc.Deals = wrappingDealRepo{deal.NewRepository()}
	q := &Quote{Reference: NewReference(), CompanyID: 3, Status: StatusDraft}
	require.NoError(t, db.Create(q).Error)

	updated, err := svc.UpdateStatus(db, q.ID, StatusExpired, 0)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, updated.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewService()
	q, _ := seedQuoteWithDeal(t, db, StatusPending)

	_, err := svc.UpdateStatus(db, q.ID, "archived", 1)
	assert.Error(t, err)
}

func TestDealStageTable(t *testing.T) {
	cases := map[string]string{
		StatusDraft:    deal.StageQuote,
		StatusPending:  deal.StageQuote,
		StatusApproved: deal.StageNegotiation,
		StatusAccepted: deal.StageClosedWon,
		StatusRejected: deal.StageClosedLost,
		StatusExpired:  deal.StageClosedLost,
	}
	for status, wantStage := range cases {
		stage, ok := DealStageFor(status)
		require.True(t, ok, status)
		assert.Equal(t, wantStage, stage, status)
	}
	_, ok := DealStageFor("archived")
	assert.False(t, ok)
}

func TestNewReference(t *testing.T) {
	a := NewReference()
	b := NewReference()
	assert.True(t, strings.HasPrefix(a, "Q-"))
	assert.NotEqual(t, a, b)
}
