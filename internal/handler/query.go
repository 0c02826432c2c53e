package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func uintQueryPtr(c *gin.Context, key string) *uint64 {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if i, err := strconv.ParseUint(val, 10, 64); err == nil {
			return &i
		}
	}
	return nil
}

func decimalQueryPtr(c *gin.Context, key string) *decimal.Decimal {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return &d
		}
	}
	return nil
}

// dateQueryPtr parses YYYY-MM-DD into a UTC midnight timestamp, matching how
// stats dates are stored.
func dateQueryPtr(c *gin.Context, key string) *time.Time {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if d, err := time.ParseInLocation("2006-01-02", val, time.UTC); err == nil {
			return &d
		}
	}
	return nil
}

func uint64Param(c *gin.Context, key string) uint64 {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		return 0
	}
	var out uint64
	for i := 0; i < len(val); i++ {
		ch := val[i]
		if ch < '0' || ch > '9' {
			return 0
		}
		out = out*10 + uint64(ch-'0')
	}
	return out
}

func parseOrder(value string, allow map[string]string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return ""
	}
	if mapped, ok := allow[key]; ok {
		return mapped
	}
	return ""
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}
