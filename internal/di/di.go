package di

import (
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/config"
	"github.com/zhulik/pollcfg/internal/gateway"
	"github.com/zhulik/pollcfg/internal/kv"
	"github.com/zhulik/pollcfg/internal/logging"
	"github.com/zhulik/pollcfg/internal/polls"
	"github.com/zhulik/pollcfg/internal/pubsub"
	"github.com/zhulik/pollcfg/internal/repo"
	"github.com/zhulik/pollcfg/internal/settings"
)

func New() *do.Injector {
	injector := do.New()

	config.Register(injector)
	Register(injector)

	return injector
}

// Register registers every service except the config.
func Register(injector *do.Injector) {
	logging.Register(injector)
	kv.Register(injector)
	pubsub.Register(injector)
	repo.Register(injector)
	settings.Register(injector)
	polls.Register(injector)
	gateway.Register(injector)
}
