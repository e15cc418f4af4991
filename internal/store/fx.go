package store

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/config"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provide(cfg config.Config, bus *realtime.Bus, clk clock.Clock, genID *snowflake.Node, log *zap.Logger) (*Store, error) {
	return New(Params{
		Bus:          bus,
		Clock:        clk,
		GenID:        genID,
		Log:          log,
		SnapshotPath: cfg.SnapshotPath,
	})
}

// Module wires the record store.
var Module = fx.Module("store",
	fx.Provide(provide),
)
