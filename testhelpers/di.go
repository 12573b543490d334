package testhelpers

import (
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/config"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/di"
)

// NewInjector returns an injector wired with the in-memory backend.
func NewInjector() *do.Injector {
	return NewInjectorWithConfig(config.Config{
		BackendName: config.BackendMemory,
		Loglevel:    "warn",
	})
}

func NewInjectorWithConfig(cfg config.Config) *do.Injector {
	injector := do.New()

	do.ProvideValue[core.Config](injector, cfg)
	di.Register(injector)

	return injector
}
