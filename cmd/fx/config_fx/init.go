package config_fx

import (
	"go.uber.org/fx"
	"travelcraft/internal/config"
)

var Module = fx.Provide(config.Load)
