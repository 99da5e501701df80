package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

type fakeTimetableSrv struct {
	layoutResp  *dto.LayoutResponse
	densityResp *dto.DensityResponse
	suggestResp *dto.SuggestResponse
	autoResp    *dto.AutoSuggestResponse
	availResp   *dto.AvailabilityResponse
	err         error

	lastLayout  dto.LayoutQuery
	lastSuggest dto.SuggestRequest
}

func (f *fakeTimetableSrv) Layout(_ context.Context, query dto.LayoutQuery) (*dto.LayoutResponse, error) {
	f.lastLayout = query
	return f.layoutResp, f.err
}

func (f *fakeTimetableSrv) Density(context.Context, dto.DensityQuery) (*dto.DensityResponse, error) {
	return f.densityResp, f.err
}

func (f *fakeTimetableSrv) Availability(context.Context, string, int) (*dto.AvailabilityResponse, error) {
	return f.availResp, f.err
}

func (f *fakeTimetableSrv) Suggest(_ context.Context, req dto.SuggestRequest) (*dto.SuggestResponse, error) {
	f.lastSuggest = req
	return f.suggestResp, f.err
}

func (f *fakeTimetableSrv) AutoSuggest(context.Context, dto.AutoSuggestRequest) (*dto.AutoSuggestResponse, error) {
	return f.autoResp, f.err
}

func (f *fakeTimetableSrv) Export(context.Context, dto.ExportQuery) ([]byte, string, string, error) {
	return []byte("day,start"), "text/csv", "timetable.csv", f.err
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func TestTimetableHandlerLayoutParsesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeTimetableSrv{layoutResp: &dto.LayoutResponse{VisibleColumns: 5, ColumnWidth: 100}}
	handler := NewTimetableHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/timetable/layout?studentId=s1&width=500", nil)

	handler.Layout(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", fake.lastLayout.StudentID)
	assert.Equal(t, 500.0, fake.lastLayout.Width)
}

func TestTimetableHandlerLayoutError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(&fakeTimetableSrv{err: appErrors.Clone(appErrors.ErrValidation, "studentId or classId is required")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/timetable/layout", nil)

	handler.Layout(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandlerSuggest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeTimetableSrv{suggestResp: &dto.SuggestResponse{
		Suggestion: timegrid.Suggestion{Score: 67},
		Band:       "fair",
	}}
	handler := NewTimetableHandler(fake)

	body := `{"classId":"c1","dayOfWeek":0,"startTime":"11:00","endTime":"12:00"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/timetable/suggest", jsonBody(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Suggest(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", fake.lastSuggest.ClassID)

	var envelope struct {
		Data dto.SuggestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 67, envelope.Data.Suggestion.Score)
	assert.Equal(t, "fair", envelope.Data.Band)
}

func TestTimetableHandlerSuggestBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(&fakeTimetableSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/timetable/suggest", jsonBody("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Suggest(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandlerAvailabilityRequiresDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(&fakeTimetableSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/s1/availability", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Availability(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandlerExportHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(&fakeTimetableSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/timetable/export?studentId=s1", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timetable.csv")
}
