package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"congestion-server/api"
	"congestion-server/api/gemini"
	"congestion-server/api/places"
	"congestion-server/api/ridership"
	"congestion-server/config"
	"congestion-server/congestion"
	"congestion-server/dao/redis"
	"congestion-server/db"
	"congestion-server/metrics"
	"congestion-server/models"
	"congestion-server/server"
	"congestion-server/server/handlers"
	services "congestion-server/service"
	"congestion-server/util"
)

// Container holds all application dependencies.
type Container struct {
	Config                 config.Config
	RedisClient            db.RedisClient
	RedisVenueDao          *redis.RedisVenueDAO
	RedisEventFactsDao     *redis.RedisEventFactsDAO
	RedisFavoritesDao      *redis.RedisFavoritesDAO
	PlacesAPI              places.PlacesAPI
	EventFactsAPI          gemini.EventFactsAPI
	SurveySource           ridership.SurveySource
	Recorder               *metrics.Recorder
	VenueService           *services.VenueService
	RidershipService       *services.RidershipService
	CongestionService      *services.CongestionService
	FavoritesService       *services.FavoritesService
	SurveyRefresherService *services.SurveyRefresherService
	MuxRouter              *mux.Router
	Router                 *server.Router
	CongestionHttpServer   *server.CongestionHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the upstream APIs and
// Redis are replaced by fixture mocks and an in-memory store.
func NewContainer(cfg config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	table := congestion.DefaultTimeWeightTable()
	if cfg.TimeWeightsPath != "" {
		table, err = util.ReadTimeWeightTableFromYAML(cfg.TimeWeightsPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Using time weight table from %s", cfg.TimeWeightsPath)
	}

	placesApi, eventFactsApi := newUpstreamClients(cfg)
	surveySource := ridership.NewFileSurveySource(cfg.SurveyPath)
	recorder := metrics.NewRecorder()

	// DAOs
	redisVenueDao := redis.NewRedisVenueDAO(redisClient)
	redisEventFactsDao := redis.NewRedisEventFactsDAO(redisClient)
	redisFavoritesDao := redis.NewRedisFavoritesDAO(redisClient)

	// Services
	ridershipService := services.NewRidershipService(surveySource, table, surveyTTL(cfg))
	venueService := services.NewVenueService(redisVenueDao, placesApi, cfg.SearchRadiusMeters, config.DEFAULT_VENUE_CATEGORIES)
	congestionService := services.NewCongestionService(placesApi, eventFactsApi, redisEventFactsDao, venueService, ridershipService, recorder)
	favoritesService := services.NewFavoritesService(redisFavoritesDao)
	surveyRefresherService := services.NewSurveyRefresherService(ridershipService, recorder)

	// Handlers
	venueHandler := handlers.NewVenueHandler(venueService)
	congestionHandler := handlers.NewCongestionHandler(congestionService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(venueHandler, congestionHandler, favoritesHandler, recorder, muxRouter)
	congestionHttpServer := server.NewCongestionHttpServer(router, muxRouter, cfg.Port)

	return &Container{
		Config:                 cfg,
		RedisClient:            redisClient,
		RedisVenueDao:          redisVenueDao,
		RedisEventFactsDao:     redisEventFactsDao,
		RedisFavoritesDao:      redisFavoritesDao,
		PlacesAPI:              placesApi,
		EventFactsAPI:          eventFactsApi,
		SurveySource:           surveySource,
		Recorder:               recorder,
		VenueService:           venueService,
		RidershipService:       ridershipService,
		CongestionService:      congestionService,
		FavoritesService:       favoritesService,
		SurveyRefresherService: surveyRefresherService,
		MuxRouter:              muxRouter,
		Router:                 router,
		CongestionHttpServer:   congestionHttpServer,
	}, nil
}

func newRedisClient(cfg config.Config) (db.RedisClient, error) {
	if !cfg.IsProd() {
		log.Printf("Using in-memory redis client")
		return db.NewMockRedisClient(), nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient := db.NewGeoRedisClient(redisInternalClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddress, err)
	}
	return redisClient, nil
}

func newUpstreamClients(cfg config.Config) (places.PlacesAPI, gemini.EventFactsAPI) {
	if !cfg.IsProd() {
		log.Printf("Using mock places and event facts apis")
		return places.NewPlacesApiClientMock(), gemini.NewGeminiApiClientMock()
	}

	log.Printf("Using prod places and event facts apis")
	timeout := config.UPSTREAM_TIMEOUT_SECONDS * time.Second
	retrier := api.NewRetrier(cfg.UpstreamMaxAttempts)
	placesApi := places.NewGooglePlacesApiClient(
		api.NewHTTPClient(config.GOOGLE_PLACES_ENDPOINT_BASE, timeout), cfg.PlacesAPIKey, retrier)
	eventFactsApi := gemini.NewGeminiApiClient(
		api.NewHTTPClient(config.GEMINI_ENDPOINT_BASE, timeout), cfg.GeminiAPIKey, cfg.GeminiModel, retrier)
	return placesApi, eventFactsApi
}

func surveyTTL(cfg config.Config) time.Duration {
	return time.Duration(cfg.SurveyRefreshMinutes) * time.Minute
}

// TimeWeights exposes the table the scorer runs with.
func (c *Container) TimeWeights() models.TimeWeightTable {
	return c.RidershipService.TimeWeights()
}
