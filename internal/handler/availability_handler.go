package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/msaedi/instructly-sub007/internal/models"
	"github.com/msaedi/instructly-sub007/internal/service"
	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
	"github.com/msaedi/instructly-sub007/pkg/response"
)

// AvailabilityHandler exposes the instructor scheduling surface.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// GetWeek godoc
// @Summary Get decoded week availability
// @Tags Availability
// @Produce json
// @Param id path string true "Instructor ID"
// @Param week_start query string true "Week start (Monday, YYYY-MM-DD)"
// @Param slots query bool false "Expand days into half-hour slots"
// @Param cache query bool false "Use cache (default true)"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/availability [get]
func (h *AvailabilityHandler) GetWeek(c *gin.Context) {
	instructorID := c.Param("id")
	weekStart := c.Query("week_start")
	if weekStart == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "week_start is required"))
		return
	}
	useCache := true
	if v, err := strconv.ParseBool(c.DefaultQuery("cache", "true")); err == nil {
		useCache = v
	}

	if withSlots, _ := strconv.ParseBool(c.DefaultQuery("slots", "false")); withSlots {
		view, err := h.service.GetWeekAvailabilityWithSlots(c.Request.Context(), instructorID, weekStart, useCache)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, view)
		return
	}

	view, err := h.service.GetWeekAvailability(c.Request.Context(), instructorID, weekStart, useCache)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SaveWeek godoc
// @Summary Save week availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param payload body service.SaveWeekRequest true "Week write"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /instructors/{id}/availability [put]
func (h *AvailabilityHandler) SaveWeek(c *gin.Context) {
	var req service.SaveWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.service.SaveWeekBits(c.Request.Context(), c.Param("id"), req, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

type addDateRequest struct {
	Date    string          `json:"date" binding:"required"`
	Windows []models.Window `json:"windows" binding:"required"`
}

// AddDate godoc
// @Summary Add availability windows on a single date
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param payload body addDateRequest true "Date and windows"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/availability/dates [post]
func (h *AvailabilityHandler) AddDate(c *gin.Context) {
	var req addDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.service.AddSingleDate(c.Request.Context(), c.Param("id"), req.Date, req.Windows, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

type blackoutRequest struct {
	Date string `json:"date" binding:"required"`
}

// Blackout godoc
// @Summary Black out a date, removing all availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param payload body blackoutRequest true "Date to black out"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/availability/blackouts [post]
func (h *AvailabilityHandler) Blackout(c *gin.Context) {
	var req blackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.service.AddBlackoutDate(c.Request.Context(), c.Param("id"), req.Date, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
