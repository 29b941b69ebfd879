// Package expiry maps expiry dates to remaining days and presentation tiers.
package expiry

import (
	"fmt"
	"time"
)

type Tier string

const (
	TierUrgent Tier = "Urgent"
	TierSoon   Tier = "Soon"
	TierFresh  Tier = "Fresh"
)

const day = 24 * time.Hour

// Thresholds are inclusive upper bounds in days for the Urgent and Soon tiers.
type Thresholds struct {
	Urgent int
	Soon   int
}

var DefaultThresholds = Thresholds{Urgent: 2, Soon: 5}

type Style struct {
	Color string `json:"color"`
	Width string `json:"width"`
}

var styles = map[Tier]Style{
	TierUrgent: {Color: "#FF6347", Width: "30%"},
	TierSoon:   {Color: "#FFA500", Width: "60%"},
	TierFresh:  {Color: "#4CAF50", Width: "90%"},
}

// Tiers lists the tiers from most to least urgent.
var Tiers = []Tier{TierUrgent, TierSoon, TierFresh}

// DaysUntilExpiry is ceil((expiry - now) / 1 day), clamped at zero.
func DaysUntilExpiry(expiry, now time.Time) int {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := diff / day
	if diff%day != 0 {
		days++
	}
	return int(days)
}

func (t Thresholds) Validate() error {
	if t.Urgent < 0 {
		return fmt.Errorf("urgent threshold must not be negative: %d", t.Urgent)
	}
	if t.Soon <= t.Urgent {
		return fmt.Errorf("soon threshold (%d) must be greater than urgent threshold (%d)", t.Soon, t.Urgent)
	}
	return nil
}

func (t Thresholds) Tier(days int) Tier {
	switch {
	case days <= t.Urgent:
		return TierUrgent
	case days <= t.Soon:
		return TierSoon
	default:
		return TierFresh
	}
}

// Bounds returns the inclusive day range of a tier; max is nil for the open-ended tier.
func (t Thresholds) Bounds(tier Tier) (min int, max *int) {
	switch tier {
	case TierUrgent:
		upper := t.Urgent
		return 0, &upper
	case TierSoon:
		upper := t.Soon
		return t.Urgent + 1, &upper
	default:
		return t.Soon + 1, nil
	}
}

func StyleOf(tier Tier) Style {
	return styles[tier]
}

type Status struct {
	Days  int
	Tier  Tier
	Style Style
}

func (t Thresholds) Describe(expiry, now time.Time) Status {
	days := DaysUntilExpiry(expiry, now)
	tier := t.Tier(days)
	return Status{
		Days:  days,
		Tier:  tier,
		Style: StyleOf(tier),
	}
}
