package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"congestion-server/models"
)

const LIMIT_QUERY_ARG = "limit"
const DEFAULT_FAVORITES_LIMIT = 10

// FavoritesRanker records station searches and lists the most used ones.
type FavoritesRanker interface {
	Record(ctx context.Context, railway, station string) (models.Favorite, error)
	Top(ctx context.Context, n int) ([]models.Favorite, error)
}

type FavoritesHandler struct {
	favorites FavoritesRanker
}

func NewFavoritesHandler(favorites FavoritesRanker) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

type favoriteRequest struct {
	Railway string `json:"railway"`
	Station string `json:"station"`
}

// GetFavorites handles GET /v1/favorites
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	limit := DEFAULT_FAVORITES_LIMIT
	if raw := r.URL.Query().Get(LIMIT_QUERY_ARG); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeBadRequest(w, "Invalid argument "+LIMIT_QUERY_ARG)
			return
		}
		limit = v
	}

	favorites, err := h.favorites.Top(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// PostFavorite handles POST /v1/favorites
func (h *FavoritesHandler) PostFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	f, err := h.favorites.Record(r.Context(), req.Railway, req.Station)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
