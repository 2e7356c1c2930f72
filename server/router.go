package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"congestion-server/metrics"
)

type VenueRoutes interface {
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type CongestionRoutes interface {
	GetCongestion(w http.ResponseWriter, r *http.Request)
	PostTimeline(w http.ResponseWriter, r *http.Request)
	GetChart(w http.ResponseWriter, r *http.Request)
}

type FavoritesRoutes interface {
	GetFavorites(w http.ResponseWriter, r *http.Request)
	PostFavorite(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler      VenueRoutes
	congestionHandler CongestionRoutes
	favoritesHandler  FavoritesRoutes
	recorder          *metrics.Recorder
	router            *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	congestionHandler CongestionRoutes,
	favoritesHandler FavoritesRoutes,
	recorder *metrics.Recorder,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:      venueHandler,
		congestionHandler: congestionHandler,
		favoritesHandler:  favoritesHandler,
		recorder:          recorder,
		router:            router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(RequestIDMiddleware, AccessLogMiddleware(r.recorder))

	// expects ?station={name}&date={YYYY-MM-DD}[&station_id={id}][&min_scale={1-10}]
	r.router.HandleFunc("/v1/congestion", r.congestionHandler.GetCongestion).Methods("GET")
	r.router.HandleFunc("/v1/congestion/timeline", r.congestionHandler.PostTimeline).Methods("POST")
	r.router.HandleFunc("/v1/congestion/chart", r.congestionHandler.GetChart).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}[&radius={meters(float)}]
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")

	r.router.HandleFunc("/v1/favorites", r.favoritesHandler.GetFavorites).Methods("GET")
	r.router.HandleFunc("/v1/favorites", r.favoritesHandler.PostFavorite).Methods("POST")

	r.router.Handle("/metrics", r.recorder.Handler()).Methods("GET")
	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
}
