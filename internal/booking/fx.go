package booking

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(service.New),
)
