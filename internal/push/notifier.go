package push

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

// Notifier delivers unsent deal events to the devices of the zone owner,
// and to the webhook when one is configured. With neither sender nor
// webhook set the pass is a no-op.
type Notifier struct {
	Repo    repository.Repository
	Sender  Sender
	Webhook *WebhookSender
	Logger  *zap.Logger
}

// SendPending pushes every unnotified deal event and returns how many
// deliveries succeeded. An event is marked notified as soon as one device
// or the webhook accepts it; events with no successful delivery stay
// pending for the next pass.
func (n *Notifier) SendPending(ctx context.Context) (int, error) {
	if n == nil || n.Repo == nil {
		return 0, nil
	}
	if n.Sender == nil && n.Webhook == nil {
		return 0, nil
	}
	events, err := n.Repo.ListUnnotifiedPushEvents(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range events {
		delivered := 0
		if n.Sender != nil {
			delivered += n.sendToDevices(ctx, event)
		}
		if n.Webhook != nil {
			if err := n.Webhook.Send(ctx, event); err != nil {
				n.logger().Warn("webhook send failed", zap.Uint64("event_id", event.ID), zap.Error(err))
			} else {
				delivered++
			}
		}
		if delivered == 0 {
			continue
		}
		sent += delivered
		if err := n.Repo.MarkDealEventPushNotified(ctx, event.ID); err != nil {
			n.logger().Warn("push mark notified failed", zap.Uint64("event_id", event.ID), zap.Error(err))
		}
	}
	return sent, nil
}

func (n *Notifier) sendToDevices(ctx context.Context, event models.DealEvent) int {
	zone, err := n.Repo.GetZoneByID(ctx, event.ZoneID)
	if err != nil {
		n.logger().Warn("push zone lookup failed", zap.Uint64("zone_id", event.ZoneID), zap.Error(err))
		return 0
	}
	if zone == nil || zone.UserID == "" {
		return 0
	}
	tokens, err := n.Repo.ListActiveDeviceTokens(ctx, zone.UserID)
	if err != nil {
		n.logger().Warn("push token lookup failed", zap.String("user_id", zone.UserID), zap.Error(err))
		return 0
	}

	payload := eventPayload(event)
	delivered := 0
	for _, token := range tokens {
		if err := n.Sender.Send(ctx, token.Token, payload); err != nil {
			n.logger().Warn("push send failed",
				zap.Uint64("event_id", event.ID),
				zap.String("user_id", zone.UserID),
				zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered
}

func eventPayload(event models.DealEvent) Payload {
	trigger := event.TriggerType
	if trigger == "" {
		trigger = models.TriggerTypeP10Deal
	}
	return Payload{
		Title: "New property deal",
		Body:  fmt.Sprintf("%s | ratio=%s | price=%s", trigger, decimalString(event.RatioYears), decimalString(event.PriceEUR)),
		Data: map[string]string{
			"zone_id":      strconv.FormatUint(event.ZoneID, 10),
			"listing_id":   strconv.FormatUint(event.ListingID, 10),
			"trigger_type": trigger,
		},
	}
}

func decimalString(p *decimal.Decimal) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func (n *Notifier) logger() *zap.Logger {
	if n != nil && n.Logger != nil {
		return n.Logger
	}
	return zap.NewNop()
}
