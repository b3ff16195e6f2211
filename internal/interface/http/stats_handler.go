package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/export"
	"github.com/nexcruit/ats-backend/pkg/response"
)

type StatsHandler struct {
	Stats  *application.StatsService
	Export *application.ExportService
}

// Get godoc
// @Summary Dashboard statistics
// @Description Recomputed on every request.
// @Tags stats
// @Produce json
// @Success 200 {object} response.APIResponse[application.Stats]
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	st, err := h.Stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st, "stats", nil)
}

// ExportCandidates godoc
// @Summary Download candidates as XLSX
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Name contains"
// @Param tech query string false "Exact technology"
// @Param status query string false "Exact status"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /exports/candidates [get]
func (h *StatsHandler) ExportCandidates(c *gin.Context) {
	data, err := h.Export.Candidates(c.Request.Context(), candidateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now().UTC())+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}
