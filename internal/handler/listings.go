package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/repository"
)

type ListingHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *ListingHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/listings")
	group.GET("", h.listListings)
	group.GET("/:id", h.getListing)
}

// @Summary List normalized listings
// @Tags listings
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param source query string false "source name"
// @Param listing_type query string false "buy|rent"
// @Param active query bool false "active"
// @Param zone_id query int false "restrict to a zone's members"
// @Param geo_key query string false "geohash prefix"
// @Param min_price query number false "minimum price in EUR"
// @Param max_price query number false "maximum price in EUR"
// @Param min_bedrooms query int false "minimum bedrooms"
// @Param order_by query string false "order by field"
// @Param ascending query bool false "ascending"
// @Success 200 {object} apiResponse
// @Router /api/v1/listings [get]
func (h *ListingHandler) listListings(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	var minBedrooms *int
	if v := intQuery(c, "min_bedrooms", -1); v >= 0 {
		minBedrooms = &v
	}
	params := repository.ListListingsParams{
		Limit:        limit,
		Offset:       offset,
		Source:       strQueryPtr(c, "source"),
		ListingType:  strQueryPtr(c, "listing_type"),
		Active:       boolQueryPtr(c, "active"),
		ZoneID:       uintQueryPtr(c, "zone_id"),
		GeoKeyPrefix: strQueryPtr(c, "geo_key"),
		MinPriceEUR:  decimalQueryPtr(c, "min_price"),
		MaxPriceEUR:  decimalQueryPtr(c, "max_price"),
		MinBedrooms:  minBedrooms,
		OrderBy: parseOrder(c.Query("order_by"), map[string]string{
			"last_seen_at":  "last_seen_at",
			"first_seen_at": "first_seen_at",
			"price_eur":     "price_eur",
			"size_m2":       "size_m2",
		}),
		Asc: boolQueryPtr(c, "ascending"),
	}

	items, err := h.Repo.ListListings(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list listings failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountListings(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a listing
// @Tags listings
// @Param id path int true "listing id"
// @Success 200 {object} apiResponse
// @Router /api/v1/listings/{id} [get]
func (h *ListingHandler) getListing(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetListingByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "listing not found", nil)
		return
	}
	Ok(c, item, nil)
}
