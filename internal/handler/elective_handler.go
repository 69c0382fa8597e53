package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simak-gateway/internal/service"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
	"github.com/noah-isme/simak-gateway/pkg/response"
)

// ElectiveHandler exposes the elective submission workflow.
type ElectiveHandler struct {
	electives *service.ElectiveService
}

// NewElectiveHandler constructs ElectiveHandler.
func NewElectiveHandler(electives *service.ElectiveService) *ElectiveHandler {
	return &ElectiveHandler{electives: electives}
}

// Participation godoc
// @Summary Resolve the student's elective standing
// @Tags Elective
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /elective/participation [get]
func (h *ElectiveHandler) Participation(c *gin.Context) {
	participation, err := h.electives.ResolveParticipation(c.Request.Context(), tokenFromContext(c), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participation, nil)
}

// Submit godoc
// @Summary Submit tier choices for the active event
// @Tags Elective
// @Accept json
// @Produce json
// @Param payload body service.SubmitRequest true "Tier choices"
// @Success 201 {object} response.Envelope
// @Router /elective/choices [post]
func (h *ElectiveHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	submission, err := h.electives.Submit(c.Request.Context(), tokenFromContext(c), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, submission)
}

// Review godoc
// @Summary Apply per-tier review decisions to a submission
// @Tags Elective
// @Accept json
// @Produce json
// @Param payload body service.ReviewRequest true "Review decisions"
// @Success 200 {object} response.Envelope
// @Router /elective/choices/status [put]
func (h *ElectiveHandler) Review(c *gin.Context) {
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.electives.Review(c.Request.Context(), tokenFromContext(c), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Submissions godoc
// @Summary List an event's submissions with review progress
// @Tags Elective
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /elective/submissions/{eventId} [get]
func (h *ElectiveHandler) Submissions(c *gin.Context) {
	details, err := h.electives.ListSubmissions(c.Request.Context(), tokenFromContext(c), claimsFromContext(c), c.Param("eventId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}
