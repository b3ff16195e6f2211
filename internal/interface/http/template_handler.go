package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

type TemplateHandler struct {
	Svc *application.TemplateService
}

func NewTemplateHandler(svc *application.TemplateService) *TemplateHandler {
	return &TemplateHandler{Svc: svc}
}

type createTemplateRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type updateTemplateRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=120"`
	Subject *string `json:"subject" binding:"omitempty,min=1"`
	Body    *string `json:"body" binding:"omitempty,min=1"`
}

func (h *TemplateHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "templates")
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), req.Name, req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "template created", nil)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "template", nil)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.TemplatePatch{Name: req.Name, Subject: req.Subject, Body: req.Body})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "template updated", nil)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Template deleted", nil)
}
