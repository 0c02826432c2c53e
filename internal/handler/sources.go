package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/TSCosta20/housing-project/internal/collector"
	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

type SourceHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *SourceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/sources")
	group.GET("", h.listSources)
	group.POST("", h.upsertSource)
}

// @Summary List collector sources
// @Tags sources
// @Param enabled query bool false "only enabled sources"
// @Success 200 {object} apiResponse
// @Router /api/v1/sources [get]
func (h *SourceHandler) listSources(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListSources(c.Request.Context(), boolQueryDefault(c, "enabled", false))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list sources failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

type sourceRequest struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Config  *datatypes.JSON `json:"config"`
	Enabled *bool           `json:"enabled"`
}

// @Summary Create or update a collector source
// @Tags sources
// @Param body body sourceRequest true "source"
// @Success 200 {object} apiResponse
// @Router /api/v1/sources [post]
func (h *SourceHandler) upsertSource(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req sourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	item := &models.Source{Name: name, Kind: req.Kind, Enabled: true}
	if req.Config != nil {
		item.Config = *req.Config
	}
	if req.Enabled != nil {
		item.Enabled = *req.Enabled
	}
	switch req.Kind {
	case collector.KindFeed:
		if _, err := collector.ParseFeedConfig(item.Config); err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	default:
		Error(c, http.StatusBadRequest, "unknown source kind", nil)
		return
	}
	if err := h.Repo.UpsertSource(c.Request.Context(), item); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("upsert source failed", zap.String("source", name), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}
