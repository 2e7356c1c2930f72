package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"congestion-server/config"
)

type CongestionHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	port      string
}

func NewCongestionHttpServer(router *Router, muxRouter *mux.Router, port string) *CongestionHttpServer {
	return &CongestionHttpServer{
		router:    router,
		muxRouter: muxRouter,
		port:      port,
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *CongestionHttpServer) Start() error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[CongestionHttpServer] Starting server on :%s", s.port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	log.Println("[CongestionHttpServer] Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("[CongestionHttpServer] Server exiting")
	return nil
}
