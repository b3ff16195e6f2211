package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	"github.com/nexcruit/ats-backend/pkg/resume"
	"github.com/nexcruit/ats-backend/pkg/response"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

type CandidateHandler struct {
	Svc            *application.CandidateService
	MaxUploadBytes int64
}

func NewCandidateHandler(svc *application.CandidateService, maxUploadBytes int64) *CandidateHandler {
	return &CandidateHandler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

type createCandidateResponse struct {
	Candidate     *entity.Candidate `json:"candidate"`
	ParserSummary resume.Summary    `json:"parserSummary"`
}

type updateCandidateRequest struct {
	Name              *string  `json:"name" binding:"omitempty,max=120"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	Phone             *string  `json:"phone"`
	References        *string  `json:"references"`
	Technology        *string  `json:"technology"`
	Level             *string  `json:"level"`
	SalaryExpectation *float64 `json:"salaryExpectation" binding:"omitempty,gte=0"`
	Experience        *float64 `json:"experience" binding:"omitempty,gte=0"`
	CVURL             *string  `json:"cvUrl"`
	Status            *string  `json:"status"`
}

type backgroundRequest struct {
	RefEmail string `json:"refEmail" binding:"required,email"`
}

// formFloat parses an optional numeric form field; blank means absent.
func formFloat(c *gin.Context, key string) (*float64, bool) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{key: "must be a non-negative number"})
		return nil, false
	}
	return &v, true
}

// formOverhead is the room left for text fields and part headers next to the file.
const formOverhead = 64 << 10

// readUpload loads the multipart "file" field; it writes the 400 itself when the file is absent.
// The request body is capped, so an oversized upload is cut off while it streams in.
func readUpload(c *gin.Context, maxBytes int64, missingMsg string) (*upload.File, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, upload.ErrTooLarge)
			return nil, false
		}
		response.Error[any](c, http.StatusBadRequest, missingMsg, nil)
		return nil, false
	}
	f, err := upload.ReadHeader(fh, maxBytes)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return f, true
}

// Create godoc
// @Summary Create a candidate from a resume upload
// @Description Accepts PDF, DOC, DOCX, plain text or image resumes up to the configured size.
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume"
// @Param name formData string true "Full name"
// @Param email formData string true "Email"
// @Param technology formData string false "Technology"
// @Success 201 {object} response.APIResponse[createCandidateResponse]
// @Failure 400 {object} response.APIResponse[any]
// @Failure 409 {object} response.APIResponse[any]
// @Security BearerAuth
// @Router /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	file, ok := readUpload(c, h.MaxUploadBytes, "CV file is required.")
	if !ok {
		return
	}
	salary, ok := formFloat(c, "salaryExpectation")
	if !ok {
		return
	}
	experience, ok := formFloat(c, "experience")
	if !ok {
		return
	}
	in := application.CandidateInput{
		Name:              c.PostForm("name"),
		Email:             c.PostForm("email"),
		Phone:             c.PostForm("phone"),
		References:        c.PostForm("references"),
		Technology:        c.PostForm("technology"),
		Level:             c.PostForm("level"),
		SalaryExpectation: salary,
		Experience:        experience,
	}
	cand, summary, err := h.Svc.Create(c.Request.Context(), in, file)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, createCandidateResponse{Candidate: cand, ParserSummary: summary}, "candidate created", nil)
}

func candidateQuery(c *gin.Context) application.CandidateQuery {
	return application.CandidateQuery{
		Search:     strings.TrimSpace(c.Query("search")),
		Technology: strings.TrimSpace(c.Query("tech")),
		Status:     strings.TrimSpace(c.Query("status")),
		Q:          strings.TrimSpace(c.Query("q")),
	}
}

// List godoc
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Param search query string false "Name contains"
// @Param tech query string false "Exact technology"
// @Param status query string false "Exact status"
// @Param q query string false "Full-text query"
// @Success 200 {object} response.APIResponse[[]entity.Candidate]
// @Security BearerAuth
// @Router /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), candidateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, list, "candidates")
}

func (h *CandidateHandler) Get(c *gin.Context) {
	d, err := h.Svc.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "candidate", nil)
}

func (h *CandidateHandler) Update(c *gin.Context) {
	var req updateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cand, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.CandidatePatch{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		References:        req.References,
		Technology:        req.Technology,
		Level:             req.Level,
		SalaryExpectation: req.SalaryExpectation,
		Experience:        req.Experience,
		CVURL:             req.CVURL,
		Status:            req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cand, "candidate updated", nil)
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Candidate deleted successfully", nil)
}

func (h *CandidateHandler) BackgroundCheck(c *gin.Context) {
	var req backgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.RequestBackgroundCheck(c.Request.Context(), c.Param("id"), req.RefEmail); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Background check request sent.", nil)
}
