package alert

import (
	"time"

	"github.com/TSCosta20/housing-project/internal/models"
)

const (
	// DefaultCooldownDays is how long a zone/listing pair stays quiet after
	// any deal event before a p10 deal may fire again.
	DefaultCooldownDays = 30

	// DefaultDropThresholdPct is the minimum relative price drop, in
	// percent, that raises a price_drop event.
	DefaultDropThresholdPct = 5.0
)

// ShouldTriggerP10 reports whether a p10 deal event fires for a zone/listing
// pair. Every previous event of the pair, whatever its trigger type, must be
// strictly older than the cooldown cutoff.
func ShouldTriggerP10(isDeal bool, previous []models.DealEvent, now time.Time, cooldownDays int) bool {
	if !isDeal {
		return false
	}
	if len(previous) == 0 {
		return true
	}
	cutoff := now.Add(-time.Duration(cooldownDays) * 24 * time.Hour)
	for _, event := range previous {
		if !event.TriggeredAt.Before(cutoff) {
			return false
		}
	}
	return true
}

// ShouldTriggerPriceDrop reports whether the current price fell enough
// relative to the price recorded on the most recent previous event.
func ShouldTriggerPriceDrop(previousPrice, currentPrice, thresholdPct float64) bool {
	if previousPrice <= 0 {
		return false
	}
	dropPct := (previousPrice - currentPrice) / previousPrice * 100
	return dropPct >= thresholdPct
}
