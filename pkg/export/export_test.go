package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

func sampleTable() WeekTable {
	return WeekTable{
		Title: "Week 36",
		Blocks: []timegrid.ScheduleBlock{
			{ID: "2", DayOfWeek: 2, StartTime: "16:00", EndTime: "17:30", Title: "Physics", Kind: timegrid.KindClass, Room: "301", TeacherName: "Kang"},
			{ID: "1", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:30", Title: "Math", Kind: timegrid.KindClass, Room: "201", TeacherName: "Park"},
			{ID: "3", DayOfWeek: 0, StartTime: "09:00", EndTime: "09:30", Title: "Review", Kind: timegrid.KindClinic},
		},
	}
}

func TestCSVExporterOrdersByDayAndTime(t *testing.T) {
	data, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "day,start,end,title,kind,room,teacher", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Mon,09:00"))
	assert.True(t, strings.HasPrefix(lines[2], "Mon,10:00"))
	assert.True(t, strings.HasPrefix(lines[3], "Wed,16:00"))
}

func TestPDFExporterProducesDocument(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
