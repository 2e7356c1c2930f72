package services

import (
	"context"
	"fmt"
	"sync"

	"congestion-server/api/places"
	"congestion-server/models"
)

type stubPlaces struct {
	mu           sync.Mutex
	coords       map[string]models.Coordinates
	venues       []models.Venue
	imageURL     string
	imageErr     error
	resolveCalls int
	searchCalls  int
}

func (s *stubPlaces) ResolveCoordinates(ctx context.Context, stationName string) (*models.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveCalls++
	c, ok := s.coords[stationName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", places.ErrNotFound, stationName)
	}
	return &c, nil
}

func (s *stubPlaces) SearchVenues(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	return s.venues, nil
}

func (s *stubPlaces) FetchRepresentativeImage(ctx context.Context, lat, lon float64, stationName string) (string, error) {
	return s.imageURL, s.imageErr
}

type stubEventFacts struct {
	mu      sync.Mutex
	payload string
	err     error
	calls   int
}

func (s *stubEventFacts) FetchEventFacts(ctx context.Context, stationName, date string, venueNames []string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.payload), nil
}

type stubSurvey struct {
	mu     sync.Mutex
	survey map[string][]models.SurveyRecord
	err    error
	calls  int
}

func (s *stubSurvey) FetchRidershipSurvey(ctx context.Context) (map[string][]models.SurveyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.survey, nil
}

func (s *stubSurvey) set(survey map[string][]models.SurveyRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.survey = survey
	s.err = err
}
