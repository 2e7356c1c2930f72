package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/errgroup"

	"congestion-server/api/gemini"
	"congestion-server/api/places"
	"congestion-server/config"
	"congestion-server/congestion"
	"congestion-server/dao/redis"
	"congestion-server/metrics"
	"congestion-server/models"
)

// ErrInvalidInput marks a request the caller has to fix.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"
const coordinatesCacheSize = 256

// CongestionService runs a station search end to end: location, venues, event facts and the
// congestion timeline.
type CongestionService struct {
	placesApi     places.PlacesAPI
	eventFactsApi gemini.EventFactsAPI
	eventFactsDao *redis.RedisEventFactsDAO
	venueService  *VenueService
	ridership     *RidershipService
	recorder      *metrics.Recorder
	coordinates   gcache.Cache
}

func NewCongestionService(
	placesApi places.PlacesAPI,
	eventFactsApi gemini.EventFactsAPI,
	eventFactsDao *redis.RedisEventFactsDAO,
	venueService *VenueService,
	ridership *RidershipService,
	recorder *metrics.Recorder) *CongestionService {

	return &CongestionService{
		placesApi:     placesApi,
		eventFactsApi: eventFactsApi,
		eventFactsDao: eventFactsDao,
		venueService:  venueService,
		ridership:     ridership,
		recorder:      recorder,
		coordinates:   gcache.New(coordinatesCacheSize).LRU().Build(),
	}
}

// ValidateRequest checks the fields every congestion request needs.
func ValidateRequest(stationName, date string) error {
	if strings.TrimSpace(stationName) == "" {
		return fmt.Errorf("%w: station is required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, date)
	}
	return nil
}

// Analyze resolves the station, finds its venues and then computes the timeline while the
// station image is looked up. A failed image lookup leaves ImageURL empty.
func (cs *CongestionService) Analyze(ctx context.Context, stationID, stationName, date string, minScale int) (*models.CongestionResponse, error) {
	if err := ValidateRequest(stationName, date); err != nil {
		return nil, err
	}

	coords, err := cs.resolveCoordinates(ctx, stationName)
	if err != nil {
		return nil, err
	}

	venues, err := cs.venueService.SearchVenues(ctx, *coords)
	if err != nil {
		return nil, err
	}

	var resp *models.CongestionResponse
	var imageURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp, err = cs.ComputeCongestionTimeline(gctx, stationID, stationName, date, venues, minScale)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		url, err := cs.placesApi.FetchRepresentativeImage(gctx, coords.Lat, coords.Lon, stationName)
		cs.recorder.RecordUpstreamCall("places_image", time.Since(start), err)
		if err != nil {
			log.Printf("[CongestionService] image lookup failed for %q: %v", stationName, err)
			return nil
		}
		imageURL = url
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.Coordinates = coords
	resp.ImageURL = imageURL
	return resp, nil
}

// ComputeCongestionTimeline scores the events at venues on date against the station's ridership.
func (cs *CongestionService) ComputeCongestionTimeline(
	ctx context.Context,
	stationID, stationName, date string,
	venues []models.Venue,
	minScale int,
) (*models.CongestionResponse, error) {
	if err := ValidateRequest(stationName, date); err != nil {
		return nil, err
	}
	if minScale <= 0 {
		minScale = config.DEFAULT_MIN_SCALE
	}

	profile := cs.ridership.Lookup(ctx, stationID)
	resp := &models.CongestionResponse{
		StationID:   stationID,
		StationName: stationName,
		Date:        date,
		Ridership:   profile,
		Venues:      []models.VenueScoredEvents{},
		Timeline:    []models.TimelineGroup{},
	}
	if len(venues) == 0 {
		log.Printf("[CongestionService] no venues around %q, nothing to score", stationName)
		return resp, nil
	}

	venueEvents, err := cs.eventFacts(ctx, stationName, date, venues)
	if err != nil {
		return nil, err
	}

	scored, timeline := congestion.ComputeTimeline(
		congestion.AttachVenueIDs(venueEvents, venues),
		profile,
		cs.ridership.TimeWeights(),
		minScale,
	)
	cs.recorder.RecordTimeline(len(timeline))

	resp.Venues = scored
	resp.Timeline = timeline
	return resp, nil
}

// eventFacts serves the payload from cache when possible. Only payloads that normalize
// cleanly are cached.
func (cs *CongestionService) eventFacts(ctx context.Context, stationName, date string, venues []models.Venue) ([]models.VenueEvents, error) {
	payload, found, err := cs.eventFactsDao.GetEventFacts(ctx, stationName, date)
	if err != nil {
		log.Printf("[CongestionService] event facts cache read failed: %v", err)
	}
	cs.recorder.RecordEventFactsCache(found)
	if found {
		if events, err := congestion.NormalizeEvents(payload); err == nil {
			return events, nil
		}
		log.Printf("[CongestionService] discarding unreadable cached event facts for %q %s", stationName, date)
	}

	names := make([]string, 0, len(venues))
	for _, v := range venues {
		names = append(names, v.Name)
	}

	start := time.Now()
	payload, err = cs.eventFactsApi.FetchEventFacts(ctx, stationName, date, names)
	cs.recorder.RecordUpstreamCall("gemini", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("event facts lookup failed: %w", err)
	}

	events, err := congestion.NormalizeEvents(payload)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := cs.eventFactsDao.SetEventFacts(ctx, stationName, date, payload); err != nil {
			log.Printf("[CongestionService] event facts cache write failed: %v", err)
		}
	}
	return events, nil
}

func (cs *CongestionService) resolveCoordinates(ctx context.Context, stationName string) (*models.Coordinates, error) {
	if v, err := cs.coordinates.Get(stationName); err == nil {
		if coords, ok := v.(models.Coordinates); ok {
			return &coords, nil
		}
	}

	start := time.Now()
	coords, err := cs.placesApi.ResolveCoordinates(ctx, stationName)
	cs.recorder.RecordUpstreamCall("places_coordinates", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := cs.coordinates.Set(stationName, *coords); err != nil {
		log.Printf("[CongestionService] could not cache coordinates for %q: %v", stationName, err)
	}
	return coords, nil
}
