// Package domain contains the member model and the loyalty tier rules.
package domain

import "time"

// Tier is a member's loyalty level. It is a deterministic, monotonic function
// of the points balance; the stored value is a snapshot of TierForPoints.
type Tier string

const (
	TierStarter Tier = "starter"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
	TierElite   Tier = "elite"
)

// Points thresholds at which each tier starts.
const (
	basicThreshold   = 5000
	premiumThreshold = 15000
	eliteThreshold   = 30000
)

// User is a Subic.Life member. Members are never hard-deleted; logout merely
// clears the active session reference.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Tier              Tier       `json:"tier"`
	Points            int        `json:"points"`
	InsuranceCoverage float64    `json:"insurance_coverage"`
	MembershipStart   time.Time  `json:"membership_start"`
	MembershipEnd     time.Time  `json:"membership_end"`
	TravelPreferences []string   `json:"travel_preferences,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Award credits points to the user and recomputes the tier snapshot and the
// insurance coverage that follows from it.
func (u User) Award(points int, now time.Time) User {
	u.Points += points
	u.Tier = TierForPoints(u.Points)
	u.InsuranceCoverage = InsuranceForTier(u.Tier)
	u.UpdatedAt = &now
	return u
}

// TierForPoints derives the loyalty tier from a points balance.
func TierForPoints(points int) Tier {
	switch {
	case points >= eliteThreshold:
		return TierElite
	case points >= premiumThreshold:
		return TierPremium
	case points >= basicThreshold:
		return TierBasic
	default:
		return TierStarter
	}
}

// InsuranceForTier returns the travel insurance coverage amount, in pesos,
// granted to each tier.
func InsuranceForTier(tier Tier) float64 {
	switch tier {
	case TierElite:
		return 500000
	case TierPremium:
		return 250000
	case TierBasic:
		return 100000
	default:
		return 50000
	}
}

// DefaultDiscountForTier returns the fallback discount percentage applied
// when a partner defines no rate of its own.
func DefaultDiscountForTier(tier Tier) float64 {
	switch tier {
	case TierElite:
		return 25
	case TierPremium:
		return 20
	case TierBasic:
		return 10
	default:
		return 5
	}
}
