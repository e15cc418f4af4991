package main

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/booking"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/config"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/logger"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/member"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/notification"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/observability/metrics"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/seed"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/server"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		metrics.Module,
		realtime.Module,
		store.Module,
		query.Module,

		// Functional domains
		member.Module,
		notification.Module,
		booking.Module,
		seed.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNodeID)
}
