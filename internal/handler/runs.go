package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/pipeline"
	"github.com/TSCosta20/housing-project/internal/repository"
)

type RunHandler struct {
	Pipeline *pipeline.Pipeline
	Repo     repository.Repository
	Logger   *zap.Logger
}

func (h *RunHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/runs")
	group.POST("/trigger", h.triggerRun)
	group.GET("", h.listRuns)
}

// @Summary Trigger a pipeline run
// @Tags runs
// @Success 200 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/v1/runs/trigger [post]
func (h *RunHandler) triggerRun(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "pipeline unavailable", nil)
		return
	}
	result, err := h.Pipeline.RunOnce(c.Request.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyRunning) {
			Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("manual pipeline run failed", zap.Error(err))
		}
		meta := map[string]any(nil)
		if result != nil {
			meta = map[string]any{"run_id": result.RunID}
		}
		Error(c, http.StatusBadGateway, err.Error(), meta)
		return
	}
	Ok(c, result, nil)
}

// @Summary List pipeline runs
// @Tags runs
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param status query string false "running|ok|error"
// @Success 200 {object} apiResponse
// @Router /api/v1/runs [get]
func (h *RunHandler) listRuns(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListPipelineRuns(c.Request.Context(), repository.ListPipelineRunsParams{
		Limit:  intQuery(c, "limit", 20),
		Offset: intQuery(c, "offset", 0),
		Status: strQueryPtr(c, "status"),
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list pipeline runs failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
