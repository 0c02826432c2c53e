package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Housing Deal Scorer

Aggregates Portuguese property listings, scores buy offers against local
rents per user zone and raises deal alerts.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/v1/zones
- POST /api/v1/zones
- GET /api/v1/zones/:id
- PUT /api/v1/zones/:id
- PATCH /api/v1/zones/:id/active
- GET /api/v1/zones/:id/stats
- GET /api/v1/zones/:id/scores
- GET /api/v1/listings
- GET /api/v1/listings/:id
- GET /api/v1/deals/events
- GET /api/v1/deals/stream (websocket)
- POST /api/v1/devices
- DELETE /api/v1/devices/:token
- GET /api/v1/sources
- POST /api/v1/sources
- GET /api/v1/runs
- POST /api/v1/runs/trigger

## Auth

With api.auth_enabled set, mutating /api/* routes require
"Authorization: Bearer <api_key>". Reads and health endpoints stay open.

## Nightly run

The pipeline runs on the configured cron schedule (03:00 Europe/Lisbon by
default) and can be triggered manually via POST /api/v1/runs/trigger.
`)
	})
}
