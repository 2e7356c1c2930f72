package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Server config
const DEFAULT_PORT = "8080"
const DEFAULT_ENV = "dev"
const SHUTDOWN_TIMEOUT_SECONDS = 5

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Congestion pipeline config
const DEFAULT_DAILY_PASSENGERS = 25000
const DEFAULT_MIN_SCALE = 5
const MAX_SCALE = 10
const MIN_SCALE = 1

// Venue search config
const DEFAULT_SEARCH_RADIUS_METERS = 1500
const VENUE_NAME_PREFIX_RUNES = 6

var DEFAULT_VENUE_CATEGORIES = []string{"stadium", "event_venue", "concert_hall", "performing_arts_theater", "convention_center", "arena"}
var EXCLUDED_VENUE_CATEGORIES = []string{"restaurant", "cafe", "lodging", "parking", "store", "gas_station"}

// Upstream config
const GOOGLE_PLACES_ENDPOINT_BASE = "https://places.googleapis.com/v1"
const GEMINI_ENDPOINT_BASE = "https://generativelanguage.googleapis.com/v1beta"
const DEFAULT_GEMINI_MODEL = "gemini-2.0-flash"
const DEFAULT_UPSTREAM_MAX_ATTEMPTS = 3
const UPSTREAM_TIMEOUT_SECONDS = 60

// Ridership survey refresher config
const SURVEY_REFRESHER_SCHEDULE_MINUTES = 60 * 24

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const STATION_COORDINATES_RESOURCE = "station_coordinates.json"
const VENUES_SEARCH_RESPONSE_RESOURCE = "venues_search_response.json"
const EVENT_FACTS_RESPONSE_RESOURCE = "event_facts_response.txt"
const STATION_IMAGES_RESOURCE = "station_images.json"
const RIDERSHIP_SURVEY_RESOURCE = "ridership_survey.yaml"
const TIME_WEIGHTS_RESOURCE = "time_weights.yaml"

// Config is the runtime configuration resolved from the environment.
type Config struct {
	Env                  string
	Port                 string
	RedisAddress         string
	RedisPassword        string
	RedisDB              int
	PlacesAPIKey         string
	GeminiAPIKey         string
	GeminiModel          string
	SurveyPath           string
	TimeWeightsPath      string
	SearchRadiusMeters   int
	UpstreamMaxAttempts  int
	SurveyRefreshMinutes int
}

// Load reads .env (when present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] could not load .env: %v", err)
	}

	return Config{
		Env:                  getEnv("APP_ENV", DEFAULT_ENV),
		Port:                 getEnv("PORT", DEFAULT_PORT),
		RedisAddress:         getEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword:        getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:              getEnvInt("REDIS_DB", REDIS_DB),
		PlacesAPIKey:         getEnv("GOOGLE_PLACES_API_KEY", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", DEFAULT_GEMINI_MODEL),
		SurveyPath:           getEnv("SURVEY_PATH", GetResourcePath(RIDERSHIP_SURVEY_RESOURCE)),
		TimeWeightsPath:      getEnv("TIME_WEIGHTS_PATH", ""),
		SearchRadiusMeters:   getEnvInt("SEARCH_RADIUS_METERS", DEFAULT_SEARCH_RADIUS_METERS),
		UpstreamMaxAttempts:  getEnvInt("UPSTREAM_MAX_ATTEMPTS", DEFAULT_UPSTREAM_MAX_ATTEMPTS),
		SurveyRefreshMinutes: getEnvInt("SURVEY_REFRESH_MINUTES", SURVEY_REFRESHER_SCHEDULE_MINUTES),
	}
}

// IsProd reports whether real upstream clients should be used.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("[Config] invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
