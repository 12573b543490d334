package config

import (
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (core.Config, error) {
		return Load()
	})
}
