// Package domain contains the booking and counter-offer models and the
// lifecycle state machine rules.
package domain

import "time"

// Status is a booking's lifecycle state.
type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusDeclined         Status = "declined"
	StatusCounterOfferSent Status = "counter_offer_sent"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking is the central transactional entity. Invariant: FinalAmount equals
// TotalAmount minus DiscountAmount after every transition that touches
// pricing. Bookings are never deleted, only terminalized.
type Booking struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	PartnerID string  `json:"partner_id"`
	Details   Details `json:"details"`

	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	TotalAmount    float64 `json:"total_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancellationNote   string `json:"cancellation_note,omitempty"`
}

// OfferStatus is a counter-offer's resolution state.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
)

// CounterOffer is a partner-proposed modification to a pending booking's
// terms. At most one pending offer may exist per booking at a time.
type CounterOffer struct {
	ID        string      `json:"id"`
	BookingID string      `json:"booking_id"`
	PartnerID string      `json:"partner_id"`
	Status    OfferStatus `json:"status"`

	ProposedDetails *Details `json:"proposed_details,omitempty"`
	// ProposedPrice is the new gross total; nil leaves pricing unchanged.
	ProposedPrice *float64 `json:"proposed_price,omitempty"`
	Message       string   `json:"message,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Loyalty point awards tied to lifecycle transitions.
const (
	PointsBookingConfirmed = 500
	PointsCheckIn          = 100
)
