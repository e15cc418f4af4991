package domain

import (
	"math"

	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
)

// RoundCentavo rounds a peso amount to the nearest centavo, halves away from
// zero. All stored monetary amounts pass through it.
func RoundCentavo(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ApplicableDiscountRate picks the discount percentage for a member at a
// partner: the partner's elite rate for elite members when defined, else the
// partner's standard rate, else the tier-indexed default table.
func ApplicableDiscountRate(p partnerdomain.Partner, tier memberdomain.Tier) float64 {
	if tier == memberdomain.TierElite && p.EliteDiscountPct > 0 {
		return p.EliteDiscountPct
	}
	if p.DiscountPct > 0 {
		return p.DiscountPct
	}
	return memberdomain.DefaultDiscountForTier(tier)
}

// PriceBreakdown computes the discount and final amounts from a gross total
// and a percentage rate. The final amount is derived by subtraction so the
// total = discount + final identity holds exactly after rounding.
func PriceBreakdown(total, ratePct float64) (discount, final float64) {
	discount = RoundCentavo(total * ratePct / 100)
	final = RoundCentavo(total - discount)
	return discount, final
}

// Commission is the platform's cut of a booking's final amount.
func Commission(finalAmount, commissionRate float64) float64 {
	if commissionRate <= 0 {
		commissionRate = partnerdomain.DefaultCommissionRate
	}
	return RoundCentavo(finalAmount * commissionRate)
}

// NetPayout is what the partner receives after commission.
func NetPayout(finalAmount, commissionRate float64) float64 {
	return RoundCentavo(finalAmount - Commission(finalAmount, commissionRate))
}
