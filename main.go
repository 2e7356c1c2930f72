package main

import (
	"context"
	"log"
	"time"

	"congestion-server/config"
	"congestion-server/di"
)

func main() {
	cfg := config.Load()

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize container: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("[MAIN] Loading ridership survey")
	if err := container.SurveyRefresherService.RefreshSurvey(ctx); err != nil {
		log.Printf("[MAIN] Initial survey load failed, stations fall back to the default profile: %v", err)
	}
	container.SurveyRefresherService.StartPeriodicJob(ctx, time.Duration(cfg.SurveyRefreshMinutes)*time.Minute)

	if err := container.CongestionHttpServer.Start(); err != nil {
		log.Fatalf("[MAIN] Server stopped: %v", err)
	}
}
