package domain

import (
	"testing"

	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/stretchr/testify/assert"
)

func TestRoundCentavo(t *testing.T) {
	assert.Equal(t, 12.35, RoundCentavo(12.345))
	assert.Equal(t, 12.34, RoundCentavo(12.344))
	assert.Equal(t, -12.35, RoundCentavo(-12.345))
	assert.Equal(t, 0.0, RoundCentavo(0))
}

func TestApplicableDiscountRate(t *testing.T) {
	partner := partnerdomain.Partner{DiscountPct: 15, EliteDiscountPct: 30}

	// elite members get the elite rate when the partner defines one
	assert.Equal(t, 30.0, ApplicableDiscountRate(partner, memberdomain.TierElite))
	// everyone else gets the partner's standard rate
	assert.Equal(t, 15.0, ApplicableDiscountRate(partner, memberdomain.TierPremium))
	assert.Equal(t, 15.0, ApplicableDiscountRate(partner, memberdomain.TierStarter))

	// elite without an elite rate falls back to the standard rate
	noElite := partnerdomain.Partner{DiscountPct: 15}
	assert.Equal(t, 15.0, ApplicableDiscountRate(noElite, memberdomain.TierElite))

	// no partner rates at all: tier default table
	bare := partnerdomain.Partner{}
	assert.Equal(t, 5.0, ApplicableDiscountRate(bare, memberdomain.TierStarter))
	assert.Equal(t, 10.0, ApplicableDiscountRate(bare, memberdomain.TierBasic))
	assert.Equal(t, 20.0, ApplicableDiscountRate(bare, memberdomain.TierPremium))
	assert.Equal(t, 25.0, ApplicableDiscountRate(bare, memberdomain.TierElite))
}

func TestPriceBreakdownIdentityHolds(t *testing.T) {
	tests := []struct {
		total        float64
		ratePct      float64
		wantDiscount float64
		wantFinal    float64
	}{
		{total: 15000, ratePct: 25, wantDiscount: 3750, wantFinal: 11250},
		{total: 12000, ratePct: 25, wantDiscount: 3000, wantFinal: 9000},
		{total: 999.99, ratePct: 10, wantDiscount: 100, wantFinal: 899.99},
		{total: 100, ratePct: 0, wantDiscount: 0, wantFinal: 100},
	}
	for _, tt := range tests {
		discount, final := PriceBreakdown(tt.total, tt.ratePct)
		assert.Equal(t, tt.wantDiscount, discount)
		assert.Equal(t, tt.wantFinal, final)
		assert.Equal(t, RoundCentavo(tt.total), RoundCentavo(discount+final))
	}
}

func TestCommissionAndNetPayout(t *testing.T) {
	assert.Equal(t, 1125.0, Commission(11250, 0.10))
	assert.Equal(t, 10125.0, NetPayout(11250, 0.10))

	// zero rate falls back to the platform default
	assert.Equal(t, 1125.0, Commission(11250, 0))
	assert.Equal(t, 1687.5, Commission(11250, 0.15))
	assert.Equal(t, 9562.5, NetPayout(11250, 0.15))
}
