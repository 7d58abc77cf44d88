package main

import (
	"context"
	"os/signal"
	"syscall"

	"finledger/internal/app"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
)

//	@title			Finledger API
//	@version		1.0
//	@description	Multi-tenant sales and expense record-keeping API

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := app.New()
	err := app.Start(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Can't start application")
		zap.L().Fatal("Can't start application: ", zap.Error(err))
	}

	if err = app.Wait(); err != nil {
		zap.L().Fatal("All systems closed with errors. LastError:", zap.Error(err))
	}

	zap.L().Info("All systems closed without errors")
}
