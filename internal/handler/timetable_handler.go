package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classforge/timetable-api/internal/dto"
	"github.com/classforge/timetable-api/internal/service"
	appErrors "github.com/classforge/timetable-api/pkg/errors"
	"github.com/classforge/timetable-api/pkg/response"
)

// TimetableHandler manages timetable endpoints.
type TimetableHandler struct {
	service *service.TimetableService
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Validate godoc
// @Summary Validate a timetable request
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.TimetableRequest true "Timetable payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/validate [post]
func (h *TimetableHandler) Validate(c *gin.Context) {
	var req dto.TimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.TimetableRequest true "Timetable payload"
// @Success 201 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.TimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Get the latest timetable for an institution
// @Tags Timetable
// @Produce json
// @Param institutionId path string true "Institution ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/{institutionId} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("institutionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export the latest timetable as CSV or PDF
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param institutionId path string true "Institution ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /timetable/export/{institutionId} [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, contentType, filename, err := h.service.Export(c.Request.Context(), c.Param("institutionId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Blob(c, contentType, filename, payload)
}
