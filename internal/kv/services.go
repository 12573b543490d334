package kv

import (
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/config"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/kv/memory"
	"github.com/zhulik/pollcfg/internal/kv/nats"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.KV, error) {
		cfg := do.MustInvoke[core.Config](injector)

		if cfg.Backend() == config.BackendMemory {
			return memory.NewKV(), nil
		}

		return nats.NewKV(injector)
	})
}
