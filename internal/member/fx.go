package member

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(service.New),
)
