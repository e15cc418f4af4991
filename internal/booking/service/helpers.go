package service

import (
	"errors"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	notificationdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"go.uber.org/zap"
)

func (s *Service) fetchBooking(db *query.Client, id string) (domain.Booking, error) {
	row, err := db.From(store.TableBookings).Eq("id", id).Single()
	if errors.Is(err, query.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	var out domain.Booking
	if err := query.Decode(row, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (s *Service) fetchOffer(db *query.Client, id string) (domain.CounterOffer, error) {
	row, err := db.From(store.TableCounterOffers).Eq("id", id).Single()
	if errors.Is(err, query.ErrNoRows) {
		return domain.CounterOffer{}, domain.ErrOfferNotFound
	}
	if err != nil {
		return domain.CounterOffer{}, err
	}
	var out domain.CounterOffer
	if err := query.Decode(row, &out); err != nil {
		return domain.CounterOffer{}, err
	}
	return out, nil
}

func (s *Service) fetchUser(db *query.Client, id string) (memberdomain.User, error) {
	row, err := db.From(store.TableUsers).Eq("id", id).MaybeSingle()
	if err != nil {
		return memberdomain.User{}, err
	}
	if row == nil {
		return memberdomain.User{}, domain.ErrInvalidUser
	}
	var out memberdomain.User
	if err := query.Decode(row, &out); err != nil {
		return memberdomain.User{}, err
	}
	return out, nil
}

func (s *Service) fetchPartner(db *query.Client, id string) (partnerdomain.Partner, error) {
	row, err := db.From(store.TablePartners).Eq("id", id).MaybeSingle()
	if err != nil {
		return partnerdomain.Partner{}, err
	}
	if row == nil {
		return partnerdomain.Partner{}, domain.ErrInvalidPartner
	}
	var out partnerdomain.Partner
	if err := query.Decode(row, &out); err != nil {
		return partnerdomain.Partner{}, err
	}
	return out, nil
}

func (s *Service) updateBooking(db *query.Client, id string, partial store.Row) (domain.Booking, error) {
	row, err := db.From(store.TableBookings).Update(partial).Eq("id", id).Exec()
	if errors.Is(err, query.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	var out domain.Booking
	if err := query.Decode(row, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (s *Service) notify(db *query.Client, n notificationdomain.Notification) error {
	row, err := query.Encode(n)
	if err != nil {
		return err
	}
	delete(row, "id")
	delete(row, "created_at")
	db.From(store.TableNotifications).Insert(row)
	return nil
}

// resolvePendingOffers terminalizes every pending counter offer for a
// booking, preserving the at-most-one-pending invariant.
func (s *Service) resolvePendingOffers(db *query.Client, bookingID string, to domain.OfferStatus) error {
	_, err := db.From(store.TableCounterOffers).
		Update(store.Row{
			"status":      string(to),
			"resolved_at": s.clock.Now().Format(time.RFC3339Nano),
		}).
		Eq("booking_id", bookingID).
		Eq("status", string(domain.OfferPending)).
		Exec()
	if errors.Is(err, query.ErrNoRows) {
		return nil
	}
	return err
}

// award credits loyalty points inside the booking's own unit of work. The
// tier and coverage recompute lives on the member model so the rules stay in
// one place.
func (s *Service) award(db *query.Client, userID string, points int, reason string) error {
	row, err := db.From(store.TableUsers).Eq("id", userID).Single()
	if errors.Is(err, query.ErrNoRows) {
		return memberdomain.ErrNotFound
	}
	if err != nil {
		return err
	}
	var user memberdomain.User
	if err := query.Decode(row, &user); err != nil {
		return err
	}

	awarded := user.Award(points, s.clock.Now())
	if _, err := db.From(store.TableUsers).
		Update(store.Row{
			"points":             awarded.Points,
			"tier":               string(awarded.Tier),
			"insurance_coverage": awarded.InsuranceCoverage,
			"updated_at":         awarded.UpdatedAt.Format(time.RFC3339Nano),
		}).
		Eq("id", userID).
		Exec(); err != nil {
		return err
	}

	s.metrics.ObservePoints(points)
	s.log.Info("points awarded",
		zap.String("user_id", userID),
		zap.Int("points", points),
		zap.String("reason", reason),
		zap.String("tier", string(awarded.Tier)),
	)
	return nil
}
