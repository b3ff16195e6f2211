package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

type InterviewHandler struct {
	Svc *application.InterviewService
}

func NewInterviewHandler(svc *application.InterviewService) *InterviewHandler {
	return &InterviewHandler{Svc: svc}
}

type scheduleInterviewRequest struct {
	Candidate     string `json:"candidate" binding:"required,objectid"`
	PipelineStage string `json:"pipelineStage" binding:"required"`
	Date          string `json:"date" binding:"required"`
}

type updateInterviewRequest struct {
	PipelineStage *string `json:"pipelineStage"`
	Date          *string `json:"date"`
}

// Schedule godoc
// @Summary Schedule an interview
// @Description Books a 30 minute meeting, emails both parties and queues a reminder.
// @Tags interviews
// @Accept json
// @Produce json
// @Param body body scheduleInterviewRequest true "Interview"
// @Success 201 {object} response.APIResponse[entity.Interview]
// @Failure 400 {object} response.APIResponse[any]
// @Failure 404 {object} response.APIResponse[any]
// @Failure 502 {object} response.APIResponse[any]
// @Security BearerAuth
// @Router /interviews [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req scheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must be an RFC 3339 timestamp"})
		return
	}
	iv, err := h.Svc.Schedule(c.Request.Context(), application.InterviewInput{
		CandidateID:   req.Candidate,
		PipelineStage: req.PipelineStage,
		Date:          *date,
	}, c.GetString(CtxUserEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, iv, "interview scheduled", nil)
}

func (h *InterviewHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "interviews")
}

func (h *InterviewHandler) Get(c *gin.Context) {
	iv, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, iv, "interview", nil)
}

func (h *InterviewHandler) Update(c *gin.Context) {
	var req updateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	var raw string
	if req.Date != nil {
		raw = *req.Date
	}
	date, err := parseDate(raw)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must be an RFC 3339 timestamp"})
		return
	}
	iv, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.PipelineStage, date)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, iv, "interview updated", nil)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Interview deleted successfully", nil)
}
