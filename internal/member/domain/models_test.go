package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   Tier
	}{
		{name: "zero is starter", points: 0, want: TierStarter},
		{name: "just under basic", points: 4999, want: TierStarter},
		{name: "basic boundary", points: 5000, want: TierBasic},
		{name: "just under premium", points: 14999, want: TierBasic},
		{name: "premium boundary", points: 15000, want: TierPremium},
		{name: "just under elite", points: 29999, want: TierPremium},
		{name: "elite boundary", points: 30000, want: TierElite},
		{name: "far past elite", points: 100000, want: TierElite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForPoints(tt.points))
		})
	}
}

func TestAwardRecomputesTierAndCoverage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := User{Tier: TierStarter, Points: 4600, InsuranceCoverage: 50000}

	awarded := user.Award(500, now)

	assert.Equal(t, 5100, awarded.Points)
	assert.Equal(t, TierBasic, awarded.Tier)
	assert.Equal(t, float64(100000), awarded.InsuranceCoverage)
	require.NotNil(t, awarded.UpdatedAt)
	assert.Equal(t, now, *awarded.UpdatedAt)

	// the receiver is untouched
	assert.Equal(t, 4600, user.Points)
	assert.Equal(t, TierStarter, user.Tier)
}

func TestInsuranceForTier(t *testing.T) {
	assert.Equal(t, float64(50000), InsuranceForTier(TierStarter))
	assert.Equal(t, float64(100000), InsuranceForTier(TierBasic))
	assert.Equal(t, float64(250000), InsuranceForTier(TierPremium))
	assert.Equal(t, float64(500000), InsuranceForTier(TierElite))
}

func TestDefaultDiscountForTier(t *testing.T) {
	assert.Equal(t, float64(5), DefaultDiscountForTier(TierStarter))
	assert.Equal(t, float64(10), DefaultDiscountForTier(TierBasic))
	assert.Equal(t, float64(20), DefaultDiscountForTier(TierPremium))
	assert.Equal(t, float64(25), DefaultDiscountForTier(TierElite))
}
