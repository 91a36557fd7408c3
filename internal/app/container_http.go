package app

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"

	"service-assignment/internal/config"
	"service-assignment/internal/http/handlers"
	"service-assignment/internal/http/pprofserver"
	"service-assignment/internal/http/router"
)

func newPprofConfig(cfg *config.Config) pprofserver.Config {
	return pprofserver.Config{
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAssignmentUsecase,
		handlers.NewAssignmentHandler,
		handlers.NewOrderUsecase,
		handlers.NewOrderReader,
		handlers.NewOrderHandler,
		newPprofConfig,
		router.New,
		serverProvider,
	)
}
