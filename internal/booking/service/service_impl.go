package service

import (
	"context"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	notificationdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/observability/metrics"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	DB      *query.Client
	Store   *store.Store
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// Service is the booking lifecycle engine. Each operation validates the
// current state against the transition table, runs as one unit of work on the
// store, emits exactly one notification to the counter-party and hands out
// loyalty points where the transition calls for it.
type Service struct {
	db      *query.Client
	store   *store.Store
	clock   clock.Clock
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		store:   p.Store,
		clock:   p.Clock,
		log:     p.Log.Named("booking.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Booking, error) {
	if req.TotalAmount <= 0 {
		return domain.Booking{}, domain.ErrInvalidAmount
	}
	if !req.Details.Valid() {
		return domain.Booking{}, domain.ErrInvalidDetails
	}

	user, err := s.fetchUser(s.db, req.UserID)
	if err != nil {
		return domain.Booking{}, err
	}
	partner, err := s.fetchPartner(s.db, req.PartnerID)
	if err != nil {
		return domain.Booking{}, err
	}

	rate := domain.ApplicableDiscountRate(partner, user.Tier)
	discount, final := domain.PriceBreakdown(req.TotalAmount, rate)

	booking := domain.Booking{
		UserID:         req.UserID,
		PartnerID:      req.PartnerID,
		Details:        req.Details,
		Status:         domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
		TotalAmount:    domain.RoundCentavo(req.TotalAmount),
		DiscountAmount: discount,
		FinalAmount:    final,
	}

	var out domain.Booking
	err = s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		row, err := query.Encode(booking)
		if err != nil {
			return err
		}
		delete(row, "id")
		delete(row, "created_at")

		inserted := db.From(store.TableBookings).Insert(row)
		if err := query.Decode(inserted[0], &out); err != nil {
			return err
		}

		return s.notify(db, notificationdomain.Notification{
			PartnerID: req.PartnerID,
			BookingID: out.ID,
			Type:      notificationdomain.TypeBookingRequest,
			Title:     "New Booking Request",
			Message:   user.Name + " requested a booking.",
		})
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("create", string(out.Status))
	s.log.Info("booking created",
		zap.String("booking_id", out.ID),
		zap.String("user_id", out.UserID),
		zap.String("partner_id", out.PartnerID),
		zap.Float64("final_amount", out.FinalAmount),
	)
	return out, nil
}

func (s *Service) Get(ctx context.Context, req domain.GetRequest) (domain.Booking, error) {
	return s.fetchBooking(s.db, req.ID)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Booking, error) {
	items, err := s.ListWithPartners(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(items))
	for i, item := range items {
		out[i] = item.Booking
	}
	return out, nil
}

// ListWithPartners returns bookings newest first with the partner record
// joined in.
func (s *Service) ListWithPartners(ctx context.Context, req domain.ListRequest) ([]domain.ListItem, error) {
	b := s.db.From(store.TableBookings).Select("*, partner:partners(*)")
	if req.UserID != "" {
		b = b.Eq("user_id", req.UserID)
	}
	if req.PartnerID != "" {
		b = b.Eq("partner_id", req.PartnerID)
	}
	if req.Status != "" {
		b = b.Eq("status", string(req.Status))
	}

	rows, err := b.Order("created_at", false).Rows()
	if err != nil {
		return nil, err
	}
	return query.DecodeRows[domain.ListItem](rows)
}

func (s *Service) Accept(ctx context.Context, req domain.AcceptRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		booking, err := s.fetchBooking(db, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPending {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "accept"}
		}

		now := s.clock.Now()
		out, err = s.updateBooking(db, booking.ID, store.Row{
			"status":       string(domain.StatusConfirmed),
			"confirmed_at": now.Format(time.RFC3339Nano),
		})
		if err != nil {
			return err
		}

		if err := s.notify(db, notificationdomain.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeBookingConfirmed,
			Title:     "Booking Confirmed",
			Message:   "Your booking has been confirmed. See you there!",
		}); err != nil {
			return err
		}

		return s.award(db, booking.UserID, domain.PointsBookingConfirmed, "booking confirmed")
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("accept", string(out.Status))
	return out, nil
}

func (s *Service) Decline(ctx context.Context, req domain.DeclineRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		booking, err := s.fetchBooking(db, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPending && booking.Status != domain.StatusCounterOfferSent {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "decline"}
		}

		// Declining while a counter offer is in flight resolves that
		// offer too, keeping the one-pending-offer invariant tidy.
		if booking.Status == domain.StatusCounterOfferSent {
			if err := s.resolvePendingOffers(db, booking.ID, domain.OfferDeclined); err != nil {
				return err
			}
		}

		out, err = s.updateBooking(db, booking.ID, store.Row{
			"status": string(domain.StatusDeclined),
		})
		if err != nil {
			return err
		}

		message := "Your booking request was declined."
		if req.Reason != "" {
			message = "Your booking request was declined: " + req.Reason
		}
		return s.notify(db, notificationdomain.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeBookingDeclined,
			Title:     "Booking Declined",
			Message:   message,
		})
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("decline", string(out.Status))
	return out, nil
}

func (s *Service) SendCounterOffer(ctx context.Context, req domain.SendCounterOfferRequest) (domain.CounterOffer, error) {
	if req.ProposedDetails == nil && req.ProposedPrice == nil {
		return domain.CounterOffer{}, domain.ErrInvalidDetails
	}
	if req.ProposedDetails != nil && !req.ProposedDetails.Valid() {
		return domain.CounterOffer{}, domain.ErrInvalidDetails
	}
	if req.ProposedPrice != nil && *req.ProposedPrice <= 0 {
		return domain.CounterOffer{}, domain.ErrInvalidAmount
	}

	var out domain.CounterOffer
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		booking, err := s.fetchBooking(db, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPending {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "send_counter_offer"}
		}

		// A new offer supersedes any stray pending one.
		if err := s.resolvePendingOffers(db, booking.ID, domain.OfferDeclined); err != nil {
			return err
		}

		offer := domain.CounterOffer{
			BookingID:       booking.ID,
			PartnerID:       booking.PartnerID,
			Status:          domain.OfferPending,
			ProposedDetails: req.ProposedDetails,
			ProposedPrice:   req.ProposedPrice,
			Message:         req.Message,
		}
		row, err := query.Encode(offer)
		if err != nil {
			return err
		}
		delete(row, "id")
		delete(row, "created_at")

		inserted := db.From(store.TableCounterOffers).Insert(row)
		if err := query.Decode(inserted[0], &out); err != nil {
			return err
		}

		if _, err := s.updateBooking(db, booking.ID, store.Row{
			"status": string(domain.StatusCounterOfferSent),
		}); err != nil {
			return err
		}

		return s.notify(db, notificationdomain.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeCounterOfferReceived,
			Title:     "Counter Offer Received",
			Message:   "The merchant proposed new terms for your booking. Review offer " + out.ID + ".",
		})
	})
	if err != nil {
		return domain.CounterOffer{}, err
	}

	s.metrics.ObserveTransition("send_counter_offer", string(domain.StatusCounterOfferSent))
	return out, nil
}

func (s *Service) AcceptCounterOffer(ctx context.Context, req domain.AcceptCounterOfferRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		offer, err := s.fetchOffer(db, req.OfferID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferPending {
			return &domain.InvalidTransitionError{BookingID: offer.BookingID, From: domain.StatusCounterOfferSent, Operation: "accept_counter_offer"}
		}

		booking, err := s.fetchBooking(db, offer.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusCounterOfferSent {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "accept_counter_offer"}
		}

		now := s.clock.Now()
		if _, err := db.From(store.TableCounterOffers).
			Update(store.Row{
				"status":      string(domain.OfferAccepted),
				"resolved_at": now.Format(time.RFC3339Nano),
			}).
			Eq("id", offer.ID).
			Exec(); err != nil {
			return err
		}

		partial := store.Row{
			"status":       string(domain.StatusConfirmed),
			"confirmed_at": now.Format(time.RFC3339Nano),
		}
		if offer.ProposedDetails != nil {
			details, err := query.Encode(*offer.ProposedDetails)
			if err != nil {
				return err
			}
			partial["details"] = details
		}
		if offer.ProposedPrice != nil {
			user, err := s.fetchUser(db, booking.UserID)
			if err != nil {
				return err
			}
			partner, err := s.fetchPartner(db, booking.PartnerID)
			if err != nil {
				return err
			}
			rate := domain.ApplicableDiscountRate(partner, user.Tier)
			discount, final := domain.PriceBreakdown(*offer.ProposedPrice, rate)
			partial["total_amount"] = domain.RoundCentavo(*offer.ProposedPrice)
			partial["discount_amount"] = discount
			partial["final_amount"] = final
		}

		out, err = s.updateBooking(db, booking.ID, partial)
		if err != nil {
			return err
		}

		if err := s.notify(db, notificationdomain.Notification{
			PartnerID: booking.PartnerID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeCounterOfferAccepted,
			Title:     "Counter Offer Accepted",
			Message:   "The member accepted your counter offer.",
		}); err != nil {
			return err
		}

		return s.award(db, booking.UserID, domain.PointsBookingConfirmed, "counter offer accepted")
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("accept_counter_offer", string(out.Status))
	return out, nil
}

func (s *Service) DeclineCounterOffer(ctx context.Context, req domain.DeclineCounterOfferRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		offer, err := s.fetchOffer(db, req.OfferID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferPending {
			return &domain.InvalidTransitionError{BookingID: offer.BookingID, From: domain.StatusCounterOfferSent, Operation: "decline_counter_offer"}
		}

		now := s.clock.Now()
		if _, err := db.From(store.TableCounterOffers).
			Update(store.Row{
				"status":      string(domain.OfferDeclined),
				"resolved_at": now.Format(time.RFC3339Nano),
			}).
			Eq("id", offer.ID).
			Exec(); err != nil {
			return err
		}

		// The booking reverts to pending so the merchant can respond again.
		out, err = s.updateBooking(db, offer.BookingID, store.Row{
			"status": string(domain.StatusPending),
		})
		if err != nil {
			return err
		}

		return s.notify(db, notificationdomain.Notification{
			PartnerID: offer.PartnerID,
			BookingID: offer.BookingID,
			Type:      notificationdomain.TypeCounterOfferDeclined,
			Title:     "Counter Offer Declined",
			Message:   "The member declined your counter offer.",
		})
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("decline_counter_offer", string(out.Status))
	return out, nil
}

func (s *Service) Cancel(ctx context.Context, req domain.CancelRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		booking, err := s.fetchBooking(db, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPending && booking.Status != domain.StatusConfirmed {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "cancel"}
		}

		now := s.clock.Now()
		out, err = s.updateBooking(db, booking.ID, store.Row{
			"status":              string(domain.StatusCancelled),
			"cancelled_at":        now.Format(time.RFC3339Nano),
			"cancellation_reason": req.Reason,
			"cancellation_note":   req.Note,
		})
		if err != nil {
			return err
		}

		message := "A booking was cancelled by the member."
		if req.Reason != "" {
			message = "A booking was cancelled by the member: " + req.Reason
		}
		return s.notify(db, notificationdomain.Notification{
			PartnerID: booking.PartnerID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeBookingCancelled,
			Title:     "Booking Cancelled",
			Message:   message,
		})
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("cancel", string(out.Status))
	return out, nil
}

func (s *Service) CheckIn(ctx context.Context, req domain.CheckInRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.Atomically(func(tx *store.Tx) error {
		db := query.NewClient(tx)

		booking, err := s.fetchBooking(db, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusConfirmed {
			return &domain.InvalidTransitionError{BookingID: booking.ID, From: booking.Status, Operation: "check_in"}
		}

		now := s.clock.Now()
		out, err = s.updateBooking(db, booking.ID, store.Row{
			"status":        string(domain.StatusCompleted),
			"checked_in_at": now.Format(time.RFC3339Nano),
		})
		if err != nil {
			return err
		}

		if err := s.notify(db, notificationdomain.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Type:      notificationdomain.TypeCheckInComplete,
			Title:     "Check-in Successful",
			Message:   "Enjoy your experience! Points have been added to your account.",
		}); err != nil {
			return err
		}

		return s.award(db, booking.UserID, domain.PointsCheckIn, "check-in")
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.metrics.ObserveTransition("check_in", string(out.Status))
	return out, nil
}

// Payout sums a partner's completed bookings and applies the commission rate.
func (s *Service) Payout(ctx context.Context, req domain.PayoutRequest) (domain.PayoutSummary, error) {
	partner, err := s.fetchPartner(s.db, req.PartnerID)
	if err != nil {
		return domain.PayoutSummary{}, err
	}

	rows, err := s.db.From(store.TableBookings).
		Eq("partner_id", req.PartnerID).
		Eq("status", string(domain.StatusCompleted)).
		Rows()
	if err != nil {
		return domain.PayoutSummary{}, err
	}
	bookings, err := query.DecodeRows[domain.Booking](rows)
	if err != nil {
		return domain.PayoutSummary{}, err
	}

	rate := partner.CommissionRate
	if rate <= 0 {
		rate = partnerdomain.DefaultCommissionRate
	}

	summary := domain.PayoutSummary{
		PartnerID:      req.PartnerID,
		Bookings:       len(bookings),
		CommissionRate: rate,
	}
	for _, b := range bookings {
		summary.GrossAmount = domain.RoundCentavo(summary.GrossAmount + b.FinalAmount)
	}
	summary.Commission = domain.Commission(summary.GrossAmount, rate)
	summary.NetPayout = domain.NetPayout(summary.GrossAmount, rate)
	return summary, nil
}
