package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
	"github.com/TSCosta20/housing-project/internal/zone"
)

type ZoneHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *ZoneHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/zones")
	group.GET("", h.listZones)
	group.POST("", h.createZone)
	group.GET("/:id", h.getZone)
	group.PUT("/:id", h.updateZone)
	group.PATCH("/:id/active", h.setZoneActive)
	group.GET("/:id/stats", h.listZoneStats)
	group.GET("/:id/scores", h.listZoneScores)
}

// @Summary List zones
// @Tags zones
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param user_id query string false "owner"
// @Param zone_type query string false "radius|polygon|admin"
// @Param active query bool false "active"
// @Param order_by query string false "order by field"
// @Param ascending query bool false "ascending"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones [get]
func (h *ZoneHandler) listZones(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListZonesParams{
		Limit:    limit,
		Offset:   offset,
		UserID:   strQueryPtr(c, "user_id"),
		ZoneType: strQueryPtr(c, "zone_type"),
		Active:   boolQueryPtr(c, "active"),
		OrderBy: parseOrder(c.Query("order_by"), map[string]string{
			"created_at": "created_at",
			"updated_at": "updated_at",
			"name":       "name",
		}),
		Asc: boolQueryPtr(c, "ascending"),
	}

	items, err := h.Repo.ListZones(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list zones failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountZones(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

type zoneRequest struct {
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	ZoneType       string          `json:"zone_type"`
	CenterLat      *float64        `json:"center_lat"`
	CenterLng      *float64        `json:"center_lng"`
	RadiusMeters   *float64        `json:"radius_meters"`
	PolygonGeoJSON *datatypes.JSON `json:"polygon_geojson"`
	AdminCodes     *datatypes.JSON `json:"admin_codes"`
	Filters        *datatypes.JSON `json:"filters"`
	IsActive       *bool           `json:"is_active"`
}

func (req *zoneRequest) validate() string {
	if strings.TrimSpace(req.UserID) == "" {
		return "user_id required"
	}
	if strings.TrimSpace(req.Name) == "" {
		return "name required"
	}
	switch req.ZoneType {
	case models.ZoneTypeRadius:
		if req.CenterLat == nil || req.CenterLng == nil || req.RadiusMeters == nil || *req.RadiusMeters <= 0 {
			return "radius zones need center_lat, center_lng and a positive radius_meters"
		}
		if *req.CenterLat < -90 || *req.CenterLat > 90 || *req.CenterLng < -180 || *req.CenterLng > 180 {
			return "center coordinates out of range"
		}
	case models.ZoneTypePolygon:
		if req.PolygonGeoJSON == nil || !zone.ValidPolygon(*req.PolygonGeoJSON) {
			return "polygon zones need a polygon_geojson with an outer ring"
		}
	case models.ZoneTypeAdmin:
		if req.AdminCodes == nil || len(*req.AdminCodes) == 0 {
			return "admin zones need admin_codes"
		}
	default:
		return "zone_type must be radius, polygon or admin"
	}
	return ""
}

func (req *zoneRequest) apply(item *models.Zone) {
	item.UserID = strings.TrimSpace(req.UserID)
	item.Name = strings.TrimSpace(req.Name)
	item.ZoneType = req.ZoneType
	item.CenterLat = req.CenterLat
	item.CenterLng = req.CenterLng
	item.RadiusMeters = req.RadiusMeters
	if req.PolygonGeoJSON != nil {
		item.PolygonGeoJSON = *req.PolygonGeoJSON
	}
	if req.AdminCodes != nil {
		item.AdminCodes = *req.AdminCodes
	}
	if req.Filters != nil {
		item.Filters = *req.Filters
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
}

// @Summary Create a zone
// @Tags zones
// @Param body body zoneRequest true "zone"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones [post]
func (h *ZoneHandler) createZone(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if msg := req.validate(); msg != "" {
		Error(c, http.StatusBadRequest, msg, nil)
		return
	}
	item := &models.Zone{IsActive: true}
	req.apply(item)
	if err := h.Repo.CreateZone(c.Request.Context(), item); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("create zone failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get a zone
// @Tags zones
// @Param id path int true "zone id"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones/{id} [get]
func (h *ZoneHandler) getZone(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetZoneByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a zone
// @Tags zones
// @Param id path int true "zone id"
// @Param body body zoneRequest true "zone"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones/{id} [put]
func (h *ZoneHandler) updateZone(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetZoneByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if msg := req.validate(); msg != "" {
		Error(c, http.StatusBadRequest, msg, nil)
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateZone(c.Request.Context(), item); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("update zone failed", zap.Uint64("zone_id", id), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

type zoneActiveRequest struct {
	Active *bool `json:"active"`
}

// @Summary Activate or deactivate a zone
// @Tags zones
// @Param id path int true "zone id"
// @Param body body zoneActiveRequest true "active flag"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones/{id}/active [patch]
func (h *ZoneHandler) setZoneActive(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req zoneActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		Error(c, http.StatusBadRequest, "active required", nil)
		return
	}
	item, err := h.Repo.GetZoneByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	if err := h.Repo.SetZoneActive(c.Request.Context(), id, *req.Active); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	item.IsActive = *req.Active
	Ok(c, item, nil)
}

// @Summary List a zone's daily stats
// @Tags zones
// @Param id path int true "zone id"
// @Param from query string false "first stats date (YYYY-MM-DD)"
// @Param to query string false "last stats date (YYYY-MM-DD)"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones/{id}/stats [get]
func (h *ZoneHandler) listZoneStats(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetZoneByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	stats, err := h.Repo.ListZoneDailyStats(c.Request.Context(), repository.ListZoneStatsParams{
		Limit:  intQuery(c, "limit", 90),
		Offset: intQuery(c, "offset", 0),
		ZoneID: &id,
		Since:  dateQueryPtr(c, "from"),
		Until:  dateQueryPtr(c, "to"),
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list zone stats failed", zap.Uint64("zone_id", id), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, stats, nil)
}

// @Summary List a zone's listing scores
// @Tags zones
// @Param id path int true "zone id"
// @Param date query string false "stats date (YYYY-MM-DD)"
// @Param deals_only query bool false "only p10 deals"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/zones/{id}/scores [get]
func (h *ZoneHandler) listZoneScores(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetZoneByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	asc := true
	params := repository.ListScoresParams{
		Limit:     limit,
		Offset:    offset,
		ZoneID:    &id,
		StatsDate: dateQueryPtr(c, "date"),
		DealsOnly: boolQueryDefault(c, "deals_only", false),
		OrderBy:   "rank_in_zone",
		Asc:       &asc,
	}
	scores, err := h.Repo.ListListingScores(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list zone scores failed", zap.Uint64("zone_id", id), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountListingScores(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, scores, paginationMeta(limit, offset, total))
}
