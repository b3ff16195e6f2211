package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

type OfferHandler struct {
	Svc *application.OfferService
}

func NewOfferHandler(svc *application.OfferService) *OfferHandler {
	return &OfferHandler{Svc: svc}
}

type createOfferRequest struct {
	Template     string            `json:"template" binding:"required,objectid"`
	Placeholders map[string]string `json:"placeholders"`
}

// Create godoc
// @Summary Send an offer built from a template
// @Tags offers
// @Accept json
// @Produce json
// @Param id path string true "Candidate id"
// @Param body body createOfferRequest true "Offer"
// @Success 201 {object} response.APIResponse[[]entity.Offer]
// @Failure 400 {object} response.APIResponse[any]
// @Failure 404 {object} response.APIResponse[any]
// @Security BearerAuth
// @Router /candidates/{id}/offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	offers, err := h.Svc.Create(c.Request.Context(), c.Param("id"), req.Template, req.Placeholders)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, offers, "offer sent", nil)
}

func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, offers, "offers")
}

func (h *OfferHandler) Get(c *gin.Context) {
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "offer", nil)
}
