package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/app"
)

//	@title			Taxiback API
//	@version		1.0
//	@description	Balances, ledger and order settlement of the taxi backend

// @host						localhost:8080
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taxiback := app.New()
	if err := taxiback.Start(ctx); err != nil {
		// the zap logger may not be configured yet when config parsing fails
		log.Error().Err(err).Msg("taxiback failed to start")
		zap.L().Fatal("taxiback failed to start", zap.Error(err))
	}

	if err := taxiback.Wait(ctx, stop); err != nil {
		zap.L().Fatal("taxiback stopped with errors", zap.Error(err))
	}
	zap.L().Info("taxiback stopped")
}
