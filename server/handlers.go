package server

import (
	"context"
	"encoding/json"
	"net/http"

	"Inshpho/config"
	"Inshpho/core/identity"
	"Inshpho/logger"
	"Inshpho/model"
	"Inshpho/repository"
	"Inshpho/storage"
)

// NewsFeed is the part of news.Service the handlers call.
type NewsFeed interface {
	Live(ctx context.Context) ([]model.Article, error)
	Category(ctx context.Context, name string) ([]model.Article, error)
}

// APIHandler serves every HTTP endpoint.
type APIHandler struct {
	identity *identity.Service
	news     NewsFeed
	blogs    repository.BlogRepository
	images   storage.ImageStore // nil when object storage is not configured
	cfg      *config.Config
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(
	identitySvc *identity.Service,
	news NewsFeed,
	blogs repository.BlogRepository,
	images storage.ImageStore,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		identity: identitySvc,
		news:     news,
		blogs:    blogs,
		images:   images,
		cfg:      cfg,
	}
}

type messageResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Msg: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
