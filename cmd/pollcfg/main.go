package main

import (
	"syscall"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/di"
	"github.com/zhulik/pollcfg/internal/gateway"
)

func main() {
	injector := di.New()

	logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "main")
	server := do.MustInvoke[*gateway.Server](injector)

	logger.Info("Starting...")

	go func() {
		err := server.Run()
		if err != nil {
			logger.WithError(err).Fatal("Failed to run server")
		}
	}()

	logger.Info("Running...")

	err := injector.ShutdownOnSignals(syscall.SIGINT, syscall.SIGTERM)
	if err != nil {
		logger.WithError(err).Fatal("Failed to shutdown")
	}
}
