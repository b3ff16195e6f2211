package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/response"
)

// UserHandler serves the signed-in user's own account.
type UserHandler struct {
	Svc *application.AuthService
}

func NewUserHandler(svc *application.AuthService) *UserHandler {
	return &UserHandler{Svc: svc}
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type setPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

type emailChangeRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(CtxUserID), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.SetPassword(c.Request.Context(), c.GetString(CtxUserID), req.Password); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password set.", nil)
}

func (h *UserHandler) RequestEmailChange(c *gin.Context) {
	var req emailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	token, err := h.Svc.RequestEmailChange(c.Request.Context(), c.GetString(CtxUserID), req.NewEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "Verification sent to the new address.", nil)
}

func (h *UserHandler) VerifyEmailChangeLink(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error[any](c, http.StatusBadRequest, "Verification token missing.", nil)
		return
	}
	u, err := h.Svc.VerifyEmailChangeLink(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": u.Email}, "Email updated.", nil)
}

func (h *UserHandler) VerifyEmailChangeOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.VerifyEmailChangeOTP(c.Request.Context(), req.Token, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": u.Email}, "Email updated.", nil)
}
