package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

type DeviceHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *DeviceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/devices")
	group.POST("", h.registerDevice)
	group.DELETE("/:token", h.deactivateDevice)
}

type deviceRequest struct {
	UserID   string  `json:"user_id"`
	Token    string  `json:"token"`
	Platform *string `json:"platform"`
}

// @Summary Register a push device token
// @Tags devices
// @Param body body deviceRequest true "device"
// @Success 200 {object} apiResponse
// @Router /api/v1/devices [post]
func (h *DeviceHandler) registerDevice(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	userID := strings.TrimSpace(req.UserID)
	token := strings.TrimSpace(req.Token)
	if userID == "" || token == "" {
		Error(c, http.StatusBadRequest, "user_id and token required", nil)
		return
	}
	item := &models.DeviceToken{
		UserID:   userID,
		Token:    token,
		Platform: req.Platform,
		IsActive: true,
	}
	if err := h.Repo.UpsertDeviceToken(c.Request.Context(), item); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("register device failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Deactivate a push device token
// @Tags devices
// @Param token path string true "device token"
// @Success 200 {object} apiResponse
// @Router /api/v1/devices/{token} [delete]
func (h *DeviceHandler) deactivateDevice(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		Error(c, http.StatusBadRequest, "token required", nil)
		return
	}
	if err := h.Repo.DeactivateDeviceToken(c.Request.Context(), token); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("deactivate device failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"token": token, "is_active": false}, nil)
}
