package repo

import (
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.PollsRepo, error) {
		return NewPollsRepo(injector)
	})
}
