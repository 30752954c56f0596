package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msaedi/instructly-sub007/internal/service"
	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
	"github.com/msaedi/instructly-sub007/pkg/response"
)

// AdmissionHandler exposes the booking admission check.
type AdmissionHandler struct {
	service *service.AdmissionService
}

// NewAdmissionHandler constructs handler.
func NewAdmissionHandler(svc *service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{service: svc}
}

type validateRequest struct {
	InstructorID string `json:"instructor_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Start        string `json:"start" binding:"required"`
	End          string `json:"end" binding:"required"`
}

// Validate godoc
// @Summary Check whether a proposed booking slot is open
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body validateRequest true "Proposed slot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bookings/validate [post]
func (h *AdmissionHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req.InstructorID, req.Date, req.Start, req.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
