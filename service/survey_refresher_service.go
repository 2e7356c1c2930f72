package services

import (
	"context"
	"log"
	"time"

	"congestion-server/metrics"
)

// SurveyRefresherService periodically reloads the ridership survey.
type SurveyRefresherService struct {
	ridership *RidershipService
	recorder  *metrics.Recorder
}

// NewSurveyRefresherService constructs a new refresher with dependencies.
func NewSurveyRefresherService(ridership *RidershipService, recorder *metrics.Recorder) *SurveyRefresherService {
	return &SurveyRefresherService{
		ridership: ridership,
		recorder:  recorder,
	}
}

// StartPeriodicJob launches the background loop at the given interval until ctx is done.
func (sr *SurveyRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Println("[SurveyRefresherService] Periodic survey refresher disabled.")
		return
	}
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *SurveyRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SurveyRefresherService] Stopping periodic survey refresher job.")
			return
		case <-ticker.C:
			log.Println("[SurveyRefresherService] Running periodic survey refresher job.")
			if err := sr.RefreshSurvey(ctx); err != nil {
				log.Printf("[SurveyRefresherService] RefreshSurvey returned error: %v", err)
			} else {
				log.Println("[SurveyRefresherService] RefreshSurvey completed successfully.")
			}
		}
	}
}

// RefreshSurvey reloads the survey once. A failed reload keeps the previous copy.
func (sr *SurveyRefresherService) RefreshSurvey(ctx context.Context) error {
	err := sr.ridership.Refresh(ctx)
	sr.recorder.RecordSurveyRefresh(err)
	return err
}
