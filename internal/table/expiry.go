package table

import (
	"math"
	"strconv"
	"time"
)

// Tier is an expiry classification derived from a renewal date
type Tier int

const (
	TierHealthy Tier = iota // more than 30 days left
	TierWarning             // 8 to 30 days left
	TierUrgent              // 0 to 7 days left
	TierExpired             // renewal date has passed
)

const (
	urgentDays  = 7
	warningDays = 30
	day         = 24 * time.Hour
)

func (t Tier) String() string {
	switch t {
	case TierExpired:
		return "Expired"
	case TierUrgent:
		return "Urgent"
	case TierWarning:
		return "Warning"
	default:
		return "Healthy"
	}
}

// DaysUntilExpiry is ceil((renew - now) / 24h)
func DaysUntilExpiry(renew, now time.Time) int {
	return int(math.Ceil(float64(renew.Sub(now)) / float64(day)))
}

// ExpiryStatus classifies a day count
func ExpiryStatus(days int) Tier {
	switch {
	case days < 0:
		return TierExpired
	case days <= urgentDays:
		return TierUrgent
	case days <= warningDays:
		return TierWarning
	default:
		return TierHealthy
	}
}

// ExpiryLabel renders the day count the way the domains table shows it
func ExpiryLabel(days int) string {
	switch {
	case days < 0:
		return "Expired"
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day"
	default:
		return strconv.Itoa(days) + " days"
	}
}
