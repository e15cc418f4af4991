// Package domain contains the partner reference model. Partners are seeded at
// startup and read-only from the booking lifecycle's perspective.
package domain

import (
	"errors"
	"time"
)

// Category classifies what a partner offers.
type Category string

const (
	CategoryHotel       Category = "hotel"
	CategoryDining      Category = "dining"
	CategoryActivity    Category = "activity"
	CategoryWaterSports Category = "water_sports"
	CategoryService     Category = "service"
)

// DefaultCommissionRate applies when a partner record leaves the rate unset.
const DefaultCommissionRate = 0.10

// Partner is a bookable merchant entity.
type Partner struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Category Category `json:"category"`
	// DiscountPct is the standard member discount; EliteDiscountPct, when
	// non-zero, replaces it for elite members.
	DiscountPct      float64   `json:"discount_pct"`
	EliteDiscountPct float64   `json:"elite_discount_pct,omitempty"`
	CommissionRate   float64   `json:"commission_rate,omitempty"`
	Offers           []string  `json:"offers,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("partner_not_found")
