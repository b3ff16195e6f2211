package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

type LetterHandler struct {
	Svc *application.LetterService
}

func NewLetterHandler(svc *application.LetterService) *LetterHandler {
	return &LetterHandler{Svc: svc}
}

// Required offer fields are checked by the service so the error lists all of them at once.
type createLetterRequest struct {
	TemplateType       string   `json:"templateType" binding:"required"`
	Position           string   `json:"position"`
	Technology         string   `json:"technology"`
	StartingDate       string   `json:"startingDate"`
	Salary             *float64 `json:"salary" binding:"omitempty,gte=0"`
	ProbationDate      string   `json:"probationDate"`
	AcceptanceDeadline string   `json:"acceptanceDeadline"`
}

// Create godoc
// @Summary Create and send an offer or rejection letter
// @Tags letters
// @Accept json
// @Produce json
// @Param id path string true "Candidate id"
// @Param body body createLetterRequest true "Letter"
// @Success 201 {object} response.APIResponse[entity.Letter]
// @Failure 400 {object} response.APIResponse[any]
// @Failure 404 {object} response.APIResponse[any]
// @Security BearerAuth
// @Router /candidates/{id}/letters [post]
func (h *LetterHandler) Create(c *gin.Context) {
	var req createLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	dates, bad := dateFields(map[string]string{
		"startingDate":       req.StartingDate,
		"probationDate":      req.ProbationDate,
		"acceptanceDeadline": req.AcceptanceDeadline,
	})
	if bad != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", bad)
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), c.Param("id"), application.LetterInput{
		TemplateType:       req.TemplateType,
		Position:           req.Position,
		Technology:         req.Technology,
		StartingDate:       dates["startingDate"],
		Salary:             req.Salary,
		ProbationDate:      dates["probationDate"],
		AcceptanceDeadline: dates["acceptanceDeadline"],
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l, "letter created", nil)
}

func (h *LetterHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "letters")
}

func (h *LetterHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.Param("letterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l, "letter", nil)
}

func (h *LetterHandler) Send(c *gin.Context) {
	l, err := h.Svc.Send(c.Request.Context(), c.Param("id"), c.Param("letterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Email sent", "letter": l}, "Email sent", nil)
}
