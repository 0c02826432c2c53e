package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/TSCosta20/housing-project/internal/normalize"
)

// feedItemSchema is the contract feed endpoints must serve: an array of
// these objects. Only the price is required; everything else degrades to
// null downstream.
const feedItemSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["price_eur"],
  "properties": {
    "external_id": {"type": ["string", "integer", "null"]},
    "url": {"type": ["string", "null"]},
    "title": {"type": ["string", "null"]},
    "listing_type": {"enum": ["buy", "rent", null]},
    "price_eur": {"type": "number"},
    "size_m2": {"type": ["number", "null"]},
    "bedrooms": {"type": ["integer", "null"]},
    "bathrooms": {"type": ["integer", "null"]},
    "lat": {"type": ["number", "null"]},
    "lng": {"type": ["number", "null"]},
    "location_text": {"type": ["string", "null"]},
    "contact_phone": {"type": ["string", "null"]},
    "contact_email": {"type": ["string", "null"]}
  }
}`

var feedItemSchema = jsonschema.MustCompileString("feed_item.json", feedItemSchemaJSON)

// FeedConfig is the Source.Config payload for feed sources.
type FeedConfig struct {
	URL string `json:"url"`

	// ListingType fills items that omit their own listing_type.
	ListingType string `json:"listing_type"`
}

var ErrMissingFeedURL = errors.New("feed source config needs a url")

func ParseFeedConfig(raw datatypes.JSON) (FeedConfig, error) {
	var config FeedConfig
	if len(raw) == 0 {
		return config, ErrMissingFeedURL
	}
	if err := json.Unmarshal(raw, &config); err != nil {
		return config, fmt.Errorf("failed to decode feed config: %w", err)
	}
	if strings.TrimSpace(config.URL) == "" {
		return config, ErrMissingFeedURL
	}
	return config, nil
}

// FeedCollector fetches a JSON array of offers and validates every element
// against the feed item schema before mapping it. Transport retries live
// here; the pipeline treats a collector as a single attempt.
type FeedCollector struct {
	name       string
	config     FeedConfig
	httpClient *http.Client
	logger     *zap.Logger

	maxAttempts int
	baseDelay   time.Duration
}

func NewFeedCollector(name string, config FeedConfig, httpClient *http.Client, logger *zap.Logger) *FeedCollector {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedCollector{
		name:        name,
		config:      config,
		httpClient:  httpClient,
		logger:      logger,
		maxAttempts: 3,
		baseDelay:   2 * time.Second,
	}
}

func (c *FeedCollector) Name() string {
	return c.name
}

func (c *FeedCollector) Collect(ctx context.Context) ([]Item, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		items, err := c.fetch(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if attempt >= c.maxAttempts {
			break
		}
		wait := time.Duration(attempt) * c.baseDelay
		c.logger.Warn("feed fetch retry",
			zap.String("source", c.name),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (c *FeedCollector) fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for idx, row := range rows {
		if err := feedItemSchema.Validate(map[string]any(row)); err != nil {
			c.logger.Warn("dropping schema-invalid feed item",
				zap.String("source", c.name),
				zap.Int("index", idx),
				zap.Error(err))
			continue
		}
		items = append(items, c.mapItem(row))
	}
	return items, nil
}

func (c *FeedCollector) mapItem(row map[string]any) Item {
	listingType := stringValue(row["listing_type"])
	if listingType == "" {
		listingType = c.config.ListingType
	}
	input := normalize.ListingInput{
		Source:       c.name,
		ListingType:  listingType,
		ExternalID:   stringPtrValue(row["external_id"]),
		URL:          stringPtrValue(row["url"]),
		Title:        stringPtrValue(row["title"]),
		PriceEUR:     floatValue(row["price_eur"]),
		SizeM2:       floatPtrValue(row["size_m2"]),
		Bedrooms:     intPtrValue(row["bedrooms"]),
		Bathrooms:    intPtrValue(row["bathrooms"]),
		Lat:          floatPtrValue(row["lat"]),
		Lng:          floatPtrValue(row["lng"]),
		LocationText: stringPtrValue(row["location_text"]),
		ContactPhone: stringPtrValue(row["contact_phone"]),
		ContactEmail: stringPtrValue(row["contact_email"]),
	}
	return Item{Source: c.name, Input: input, Payload: row}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringPtrValue(v any) *string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return &t
	case float64:
		// Numeric external ids are stored as their decimal string.
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	}
	return nil
}

func floatValue(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

func floatPtrValue(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func intPtrValue(v any) *int {
	if f, ok := v.(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}
