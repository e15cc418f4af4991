package realtime

import "go.uber.org/fx"

// Module wires the change notification bus.
var Module = fx.Module("realtime",
	fx.Provide(NewBus),
)
