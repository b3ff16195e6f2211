package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
	"github.com/nexcruit/ats-backend/pkg/upload"
	"github.com/nexcruit/ats-backend/pkg/validation"
)

// respondError maps service errors to statuses. Anything unclassified is left to
// the central error middleware so it is logged once with the request id.
func respondError(c *gin.Context, err error) {
	var verr *application.ValidationError
	var upstream *application.UpstreamError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, verr.Message, verr.Fields)
	case errors.As(err, &upstream):
		response.Error[any](c, http.StatusBadGateway, upstream.Error(), nil)
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrUnsupportedType):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrBadRequest):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	default:
		_ = c.Error(err)
		c.Abort()
	}
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
