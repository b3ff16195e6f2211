package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

// FeedbackHandler serves comments, pipeline sections and assessments.
type FeedbackHandler struct {
	Comments       *application.CommentService
	Sections       *application.SectionService
	Assessments    *application.AssessmentService
	MaxUploadBytes int64
}

type commentRequest struct {
	Comment string `json:"comment" binding:"required,max=5000"`
}

type sectionsRequest struct {
	Sections []string `json:"sections" binding:"required,dive,max=120"`
}

func (h *FeedbackHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cm, err := h.Comments.Add(c.Request.Context(), c.Param("id"), c.GetString(CtxUserID), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "comment added", nil)
}

func (h *FeedbackHandler) ListComments(c *gin.Context) {
	list, err := h.Comments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "comments")
}

func (h *FeedbackHandler) GetSections(c *gin.Context) {
	list, err := h.Sections.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "sections")
}

func (h *FeedbackHandler) SaveSections(c *gin.Context) {
	var req sectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	list, err := h.Sections.Save(c.Request.Context(), req.Sections)
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "sections saved")
}

// AddAssessment handles both POST /candidates/:id/assessments and its /assessments/:id/assessment alias.
func (h *FeedbackHandler) AddAssessment(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"title": "is required"})
		return
	}
	var score float64
	if raw := strings.TrimSpace(c.PostForm("score")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"score": "must be a number"})
			return
		}
		score = v
	}
	file, ok := readUpload(c, h.MaxUploadBytes, "Assessment file is required.")
	if !ok {
		return
	}
	list, err := h.Assessments.Add(c.Request.Context(), c.Param("id"), application.AssessmentInput{
		Title:   title,
		Score:   score,
		Remarks: strings.TrimSpace(c.PostForm("remarks")),
	}, file)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, list, "assessment added", nil)
}

func (h *FeedbackHandler) ListAssessments(c *gin.Context) {
	list, err := h.Assessments.ListByCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "assessments")
}

func (h *FeedbackHandler) GetAssessment(c *gin.Context) {
	a, err := h.Assessments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "assessment", nil)
}
