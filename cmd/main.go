package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/cart"
	"github.com/wicaksana/kedai/catalog"
	"github.com/wicaksana/kedai/config"
	"github.com/wicaksana/kedai/database"
	"github.com/wicaksana/kedai/database/dbhelper"
	"github.com/wicaksana/kedai/handlers"
	"github.com/wicaksana/kedai/notify"
	"github.com/wicaksana/kedai/order"
	"github.com/wicaksana/kedai/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	config.Init()

	if err := database.ConnectAndMigrate(config.DatabaseURL); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	pricingCfg := config.Pricing()
	handlers.Setup(
		cart.NewStore(),
		catalog.NewService(dbhelper.CatalogStore{}),
		order.NewCheckoutService(order.NewComposer(pricingCfg), dbhelper.OrderGateway{}),
		pricingCfg,
		notify.NewHub(),
	)

	svr := server.SetupRoutes()
	go func() {
		if err := svr.Run(config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Panicf("server stopped, error: %v", err)
		}
	}()
	logrus.Infof("listening on %s", config.Port)

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly")
	}
	if err := database.Shutdown(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	}
}
