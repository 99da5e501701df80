package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	"github.com/hagwon-io/hagwon-api/internal/service"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/response"
)

// ScheduleHandler manages schedule block endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedule blocks for a student
// @Tags Schedules
// @Produce json
// @Param studentId query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /schedule-blocks [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	blocks, err := h.service.ListWeek(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	payloads := make([]dto.BlockPayload, 0, len(blocks))
	for _, block := range blocks {
		payloads = append(payloads, dto.PayloadFromBlock(block))
	}
	response.JSON(c, http.StatusOK, payloads, nil)
}

// Create godoc
// @Summary Create schedule block
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.CreateBlockRequest true "Block payload"
// @Success 201 {object} response.Envelope
// @Router /schedule-blocks [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	block, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.PayloadFromBlock(*block))
}

// Update godoc
// @Summary Update schedule block
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Param payload body dto.UpdateBlockRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /schedule-blocks/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	block, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.PayloadFromBlock(*block), nil)
}

// Delete godoc
// @Summary Delete schedule block
// @Tags Schedules
// @Param id path string true "Block ID"
// @Success 204
// @Router /schedule-blocks/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Apply godoc
// @Summary Apply an edited week
// @Description Diffs the submitted week against the stored one and reconciles.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.ApplyBlocksRequest true "Edited week"
// @Success 200 {object} response.Envelope
// @Router /timetable/blocks:apply [post]
func (h *ScheduleHandler) Apply(c *gin.Context) {
	var req dto.ApplyBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.service.ApplyWeek(c.Request.Context(), req)
	if err != nil {
		if resp != nil {
			appErr := appErrors.FromError(err)
			c.Header("Cache-Control", "no-store")
			c.JSON(appErr.Status, response.Envelope{Data: resp, Error: appErr})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
