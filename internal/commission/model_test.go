package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScheduleEqualSplit(t *testing.T) {
	c := Commission{Premium: 12000, Rate: 0.1}
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	rows := c.BuildSchedule(12, start)
	require.Len(t, rows, 12)
	assert.Equal(t, 1200.0, c.Amount)

	var total float64
	for i, row := range rows {
		assert.Equal(t, StatusPending, row.Status)
		assert.Equal(t, start.AddDate(0, i, 0), row.DueDate)
		total += row.Amount
	}
	assert.InDelta(t, c.Amount, total, 0.001)
}

func TestBuildScheduleRoundingRemainderOnLast(t *testing.T) {
	c := Commission{Premium: 1000, Rate: 0.1} // 100.00 over 3: 33.33 + 33.33 + 33.34
	rows := c.BuildSchedule(3, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, rows, 3)
	assert.Equal(t, 33.33, rows[0].Amount)
	assert.Equal(t, 33.33, rows[1].Amount)
	assert.Equal(t, 33.34, rows[2].Amount)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, -33.33, round2(-33.333))
}

func TestBuildScheduleZeroCount(t *testing.T) {
	c := Commission{Premium: 500, Rate: 0.2}
	assert.Nil(t, c.BuildSchedule(0, time.Now()))
	assert.Equal(t, 100.0, c.Amount)
}
