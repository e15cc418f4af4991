// Package server exposes the member and merchant surfaces over HTTP. Both
// consume the lifecycle services only; neither touches the record store's
// tables directly.
package server

import (
	"context"
	"net/http"
	"time"

	bookingdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/config"
	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	notificationdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/observability/metrics"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine with recovery, request logging, metrics and
// error translation middleware.
func NewEngine(log *zap.Logger, m *metrics.Metrics, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	log    *zap.Logger

	db    *query.Client
	store *store.Store

	bookingSvc      bookingdomain.Service
	memberSvc       memberdomain.Service
	notificationSvc notificationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	DB              *query.Client
	Store           *store.Store
	BookingSvc      bookingdomain.Service
	MemberSvc       memberdomain.Service
	NotificationSvc notificationdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		db:              p.DB,
		store:           p.Store,
		bookingSvc:      p.BookingSvc,
		memberSvc:       p.MemberSvc,
		notificationSvc: p.NotificationSvc,
	}
	s.RegisterAPIRoutes()
	return s
}

// RegisterAPIRoutes mounts the member and merchant surfaces.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	// Member surface.
	v1.POST("/members", s.RegisterMember)
	v1.GET("/members/:id", s.GetMember)
	v1.GET("/partners", s.ListPartners)
	v1.POST("/bookings", s.CreateBooking)
	v1.GET("/bookings", s.ListBookings)
	v1.GET("/bookings/:id", s.GetBooking)
	v1.POST("/bookings/:id/cancel", s.CancelBooking)
	v1.POST("/counter-offers/:id/accept", s.AcceptCounterOffer)
	v1.POST("/counter-offers/:id/decline", s.DeclineCounterOffer)
	v1.GET("/notifications", s.ListNotifications)
	v1.POST("/notifications/:id/read", s.MarkNotificationRead)

	// Merchant surface.
	merchant := v1.Group("/merchant")
	merchant.POST("/session", s.OpenMerchantSession)
	merchant.GET("/session", s.GetMerchantSession)
	merchant.DELETE("/session", s.CloseMerchantSession)
	merchant.GET("/bookings", s.MerchantBookings)
	merchant.POST("/bookings/:id/accept", s.AcceptBooking)
	merchant.POST("/bookings/:id/decline", s.DeclineBooking)
	merchant.POST("/bookings/:id/counter-offer", s.SendCounterOffer)
	merchant.POST("/bookings/:id/check-in", s.CheckInBooking)
	merchant.GET("/payout", s.MerchantPayout)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// Module wires the HTTP server and its handlers.
var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)
