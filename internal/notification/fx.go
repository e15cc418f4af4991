package notification

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(service.New),
)
