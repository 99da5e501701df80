package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/response"
)

// TimetableProvider is the slice of the timetable service the handler needs.
type TimetableProvider interface {
	Layout(ctx context.Context, query dto.LayoutQuery) (*dto.LayoutResponse, error)
	Density(ctx context.Context, query dto.DensityQuery) (*dto.DensityResponse, error)
	Availability(ctx context.Context, studentID string, dayOfWeek int) (*dto.AvailabilityResponse, error)
	Suggest(ctx context.Context, req dto.SuggestRequest) (*dto.SuggestResponse, error)
	AutoSuggest(ctx context.Context, req dto.AutoSuggestRequest) (*dto.AutoSuggestResponse, error)
	Export(ctx context.Context, query dto.ExportQuery) ([]byte, string, string, error)
}

// TimetableHandler manages timetable computation endpoints.
type TimetableHandler struct {
	service TimetableProvider
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc TimetableProvider) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

func scopeFromQuery(c *gin.Context) dto.TimetableScope {
	return dto.TimetableScope{
		StudentID: c.Query("studentId"),
		ClassID:   c.Query("classId"),
	}
}

// Layout godoc
// @Summary Compute pixel layout for a week
// @Tags Timetable
// @Produce json
// @Param studentId query string false "Student scope"
// @Param classId query string false "Class scope"
// @Param width query number false "Viewport width in pixels"
// @Success 200 {object} response.Envelope
// @Router /timetable/layout [get]
func (h *TimetableHandler) Layout(c *gin.Context) {
	query := dto.LayoutQuery{TimetableScope: scopeFromQuery(c)}
	if width, err := strconv.ParseFloat(c.Query("width"), 64); err == nil {
		query.Width = width
	}
	resp, err := h.service.Layout(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Density godoc
// @Summary Compute slot occupancy for a week
// @Tags Timetable
// @Produce json
// @Param studentId query string false "Student scope"
// @Param classId query string false "Class scope"
// @Success 200 {object} response.Envelope
// @Router /timetable/density [get]
func (h *TimetableHandler) Density(c *gin.Context) {
	resp, err := h.service.Density(c.Request.Context(), dto.DensityQuery{TimetableScope: scopeFromQuery(c)})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Availability godoc
// @Summary Free intervals of a student on one day
// @Tags Timetable
// @Produce json
// @Param id path string true "Student ID"
// @Param dayOfWeek query int true "Day index, Monday is 0"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/availability [get]
func (h *TimetableHandler) Availability(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("dayOfWeek"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dayOfWeek is required"))
		return
	}
	resp, err := h.service.Availability(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Suggest godoc
// @Summary Score a candidate window against a class roster
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SuggestRequest true "Candidate window"
// @Success 200 {object} response.Envelope
// @Router /timetable/suggest [post]
func (h *TimetableHandler) Suggest(c *gin.Context) {
	var req dto.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.service.Suggest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// AutoSuggest godoc
// @Summary Find the best common free window for a roster
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.AutoSuggestRequest true "Search parameters"
// @Success 200 {object} response.Envelope
// @Router /timetable/suggest:auto [post]
func (h *TimetableHandler) AutoSuggest(c *gin.Context) {
	var req dto.AutoSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.service.AutoSuggest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Export godoc
// @Summary Export a week as CSV or PDF
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param studentId query string false "Student scope"
// @Param classId query string false "Class scope"
// @Param format query string false "csv or pdf" default(csv)
// @Param title query string false "Document title"
// @Success 200 {file} file
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	query := dto.ExportQuery{
		TimetableScope: scopeFromQuery(c),
		Format:         c.DefaultQuery("format", "csv"),
		Title:          c.Query("title"),
	}
	data, contentType, filename, err := h.service.Export(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
