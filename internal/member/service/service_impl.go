package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// membershipDuration is the validity window granted at registration.
const membershipDuration = 365 * 24 * time.Hour

type Params struct {
	fx.In

	DB    *query.Client
	Clock clock.Clock
	Log   *zap.Logger
}

type Service struct {
	db    *query.Client
	clock clock.Clock
	log   *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		clock: p.Clock,
		log:   p.Log.Named("member.service"),
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	user := domain.User{
		Name:              name,
		Email:             email,
		Tier:              domain.TierStarter,
		Points:            0,
		InsuranceCoverage: domain.InsuranceForTier(domain.TierStarter),
		MembershipStart:   now,
		MembershipEnd:     now.Add(membershipDuration),
		TravelPreferences: req.TravelPreferences,
	}

	row, err := query.Encode(user)
	if err != nil {
		return domain.User{}, err
	}
	delete(row, "id") // let the store assign one

	inserted := s.db.From(store.TableUsers).Insert(row)
	var stored domain.User
	if err := query.Decode(inserted[0], &stored); err != nil {
		return domain.User{}, err
	}

	s.log.Info("member registered",
		zap.String("user_id", stored.ID),
		zap.String("email", stored.Email),
	)
	return stored, nil
}

func (s *Service) Get(ctx context.Context, req domain.GetRequest) (domain.User, error) {
	row, err := s.db.From(store.TableUsers).Eq("id", req.ID).Single()
	if errors.Is(err, query.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	if err := query.Decode(row, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// AwardPoints credits points and refreshes the tier and insurance snapshots,
// which are derived from the new balance, never stored independently.
func (s *Service) AwardPoints(ctx context.Context, req domain.AwardPointsRequest) (domain.User, error) {
	if req.Points <= 0 {
		return domain.User{}, domain.ErrInvalidPoints
	}

	user, err := s.Get(ctx, domain.GetRequest{ID: req.UserID})
	if err != nil {
		return domain.User{}, err
	}

	awarded := user.Award(req.Points, s.clock.Now())

	updated, err := s.db.From(store.TableUsers).
		Update(store.Row{
			"points":             awarded.Points,
			"tier":               string(awarded.Tier),
			"insurance_coverage": awarded.InsuranceCoverage,
			"updated_at":         awarded.UpdatedAt.Format(time.RFC3339Nano),
		}).
		Eq("id", req.UserID).
		Exec()
	if err != nil {
		return domain.User{}, err
	}

	var out domain.User
	if err := query.Decode(updated, &out); err != nil {
		return domain.User{}, err
	}

	s.log.Info("points awarded",
		zap.String("user_id", req.UserID),
		zap.Int("points", req.Points),
		zap.String("reason", req.Reason),
		zap.String("tier", string(out.Tier)),
	)
	return out, nil
}
