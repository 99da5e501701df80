package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDensityExpandsBlocks(t *testing.T) {
	cfg := testConfig()
	// One 90-minute block at 30-minute granularity occupies 3 slots.
	density := ComputeDensity([]ScheduleBlock{block("b1", 0, "14:00", "15:30")}, cfg)

	assert.Equal(t, 3, density.Total())
	assert.Equal(t, 1, density[SlotKey(0, mustClock("14:00"))])
	assert.Equal(t, 1, density[SlotKey(0, mustClock("14:30"))])
	assert.Equal(t, 1, density[SlotKey(0, mustClock("15:00"))])
	assert.Zero(t, density[SlotKey(0, mustClock("15:30"))])
}

func TestComputeDensityConservation(t *testing.T) {
	cfg := testConfig()
	blocks := []ScheduleBlock{
		block("a", 0, "09:00", "10:00"),
		block("b", 0, "09:30", "11:00"),
		block("c", 4, "18:00", "21:00"),
	}
	density := ComputeDensity(blocks, cfg)

	expected := 0
	for _, b := range blocks {
		duration, err := b.DurationMinutes()
		require.NoError(t, err)
		expected += duration / cfg.SlotMinutes
	}
	assert.Equal(t, expected, density.Total())
	// Overlap of a and b doubles the 09:30 slot.
	assert.Equal(t, 2, density[SlotKey(0, mustClock("09:30"))])
	assert.Equal(t, 2, density.Max())
}

func TestComputeDensityIgnoresMalformed(t *testing.T) {
	cfg := testConfig()
	density := ComputeDensity([]ScheduleBlock{
		{ID: "bad", DayOfWeek: 0, StartTime: "9:0", EndTime: "10:00"},
		{ID: "inverted", DayOfWeek: 0, StartTime: "12:00", EndTime: "11:00"},
	}, cfg)
	assert.Zero(t, density.Total())
}

func TestComputeTooltipIndexOrder(t *testing.T) {
	cfg := testConfig()
	blocks := []ScheduleBlock{
		{ID: "1", DayOfWeek: 2, StartTime: "16:00", EndTime: "17:00", StudentID: "stu-1", StudentName: "Yuna", Title: "Math"},
		{ID: "2", DayOfWeek: 2, StartTime: "16:30", EndTime: "17:30", StudentID: "stu-2", StudentName: "Minho", Title: "English"},
	}
	index := ComputeTooltipIndex(blocks, cfg)

	shared := index[SlotKey(2, mustClock("16:30"))]
	require.Len(t, shared, 2)
	// Input iteration order, never sorted.
	assert.Equal(t, "stu-1", shared[0].StudentID)
	assert.Equal(t, "Yuna", shared[0].StudentName)
	assert.Equal(t, "stu-2", shared[1].StudentID)
	assert.Equal(t, "English", shared[1].Title)

	only := index[SlotKey(2, mustClock("16:00"))]
	require.Len(t, only, 1)
	assert.Equal(t, "stu-1", only[0].StudentID)
}
