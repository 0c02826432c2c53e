package collector

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/normalize"
)

// KindFeed identifies sources served by a JSON feed endpoint.
const KindFeed = "feed"

// Item is one collected offer: the mapped listing fields plus the source's
// original payload for the audit trail.
type Item struct {
	Source  string
	Input   normalize.ListingInput
	Payload map[string]any
}

type Collector interface {
	Name() string
	Collect(ctx context.Context) ([]Item, error)
}

// Build instantiates the collector for a source row. Unknown kinds and bad
// configs return nil; the caller skips the source.
func Build(source models.Source, httpClient *http.Client, logger *zap.Logger) Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch source.Kind {
	case KindFeed:
		config, err := ParseFeedConfig(source.Config)
		if err != nil {
			logger.Warn("invalid feed source config",
				zap.String("source", source.Name),
				zap.Error(err))
			return nil
		}
		return NewFeedCollector(source.Name, config, httpClient, logger)
	default:
		logger.Warn("unknown collector kind",
			zap.String("source", source.Name),
			zap.String("kind", source.Kind))
		return nil
	}
}
