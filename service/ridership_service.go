package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bluele/gcache"

	"congestion-server/api/ridership"
	"congestion-server/congestion"
	"congestion-server/models"
)

const surveyCacheKey = "ridership_survey"

// RidershipService resolves station profiles from a cached copy of the passenger survey.
type RidershipService struct {
	source ridership.SurveySource
	cache  gcache.Cache
	table  models.TimeWeightTable
}

// NewRidershipService caches the survey for ttl; the first lookup after expiry reloads it.
func NewRidershipService(source ridership.SurveySource, table models.TimeWeightTable, ttl time.Duration) *RidershipService {
	builder := gcache.New(1).LRU()
	if ttl > 0 {
		builder = builder.Expiration(ttl)
	}
	return &RidershipService{source: source, table: table, cache: builder.Build()}
}

// Lookup returns the profile of stationID. When the survey cannot be loaded the station is
// treated as unsurveyed.
func (rs *RidershipService) Lookup(ctx context.Context, stationID string) models.RidershipProfile {
	survey, err := rs.survey(ctx)
	if err != nil {
		log.Printf("[RidershipService] survey unavailable, using default profile for %q: %v", stationID, err)
		return congestion.DefaultProfile(stationID)
	}
	return congestion.LookupProfile(survey, stationID)
}

// Refresh reloads the survey from its source and replaces the cached copy.
func (rs *RidershipService) Refresh(ctx context.Context) error {
	survey, err := rs.source.FetchRidershipSurvey(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh ridership survey: %w", err)
	}
	if err := rs.cache.Set(surveyCacheKey, survey); err != nil {
		return fmt.Errorf("failed to cache ridership survey: %w", err)
	}
	log.Printf("[RidershipService] survey refreshed, %d stations", len(survey))
	return nil
}

func (rs *RidershipService) TimeWeights() models.TimeWeightTable {
	return rs.table
}

// survey serves the cached copy and loads it under the caller's ctx on a miss.
func (rs *RidershipService) survey(ctx context.Context) (map[string][]models.SurveyRecord, error) {
	v, err := rs.cache.GetIFPresent(surveyCacheKey)
	if errors.Is(err, gcache.KeyNotFoundError) {
		survey, err := rs.source.FetchRidershipSurvey(ctx)
		if err != nil {
			return nil, err
		}
		if err := rs.cache.Set(surveyCacheKey, survey); err != nil {
			log.Printf("[RidershipService] could not cache survey: %v", err)
		}
		return survey, nil
	}
	if err != nil {
		return nil, err
	}
	survey, ok := v.(map[string][]models.SurveyRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected survey cache entry %T", v)
	}
	return survey, nil
}
