package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/TSCosta20/housing-project/internal/repository"
	"github.com/TSCosta20/housing-project/internal/stream"
)

type DealsHandler struct {
	Repo   repository.Repository
	Hub    *stream.Hub
	Buffer int
	Logger *zap.Logger
}

func (h *DealsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/deals")
	group.GET("/events", h.listEvents)
	group.GET("/stream", h.streamEvents)
}

// @Summary List deal events
// @Tags deals
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param zone_id query int false "zone id"
// @Param listing_id query int false "listing id"
// @Param trigger_type query string false "p10_deal|price_drop"
// @Param since query string false "first triggered date (YYYY-MM-DD)"
// @Success 200 {object} apiResponse
// @Router /api/v1/deals/events [get]
func (h *DealsHandler) listEvents(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListDealEventsParams{
		Limit:       limit,
		Offset:      offset,
		ZoneID:      uintQueryPtr(c, "zone_id"),
		ListingID:   uintQueryPtr(c, "listing_id"),
		TriggerType: strQueryPtr(c, "trigger_type"),
		Since:       dateQueryPtr(c, "since"),
	}

	items, err := h.Repo.ListDealEvents(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list deal events failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountDealEvents(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Stream deal events over websocket
// @Tags deals
// @Success 101 {string} string "switching protocols"
// @Router /api/v1/deals/stream [get]
func (h *DealsHandler) streamEvents(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusServiceUnavailable, "stream unavailable", nil)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	events := h.Hub.Subscribe(h.Buffer)
	defer h.Hub.Unsubscribe(events)

	// The client never sends application messages; CloseRead keeps control
	// frames serviced and cancels the context when the peer goes away.
	ctx := conn.CloseRead(c.Request.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event := <-events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
