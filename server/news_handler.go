package server

import (
	"errors"
	"net/http"

	"Inshpho/core/news"
	"Inshpho/logger"
	"Inshpho/model"

	"github.com/gorilla/mux"
)

// LiveNewsHandler handles GET /api/news/live.
func (h *APIHandler) LiveNewsHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := h.news.Live(r.Context())
	if err != nil {
		h.writeNewsError(w, "live", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilArticles(articles))
}

// NewsCategoriesHandler handles GET /api/news/categories.
func (h *APIHandler) NewsCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": news.Categories()})
}

// CategoryNewsHandler handles GET /api/news/{category}.
func (h *APIHandler) CategoryNewsHandler(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	articles, err := h.news.Category(r.Context(), category)
	if err != nil {
		h.writeNewsError(w, category, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilArticles(articles))
}

func (h *APIHandler) writeNewsError(w http.ResponseWriter, feed string, err error) {
	var upstream *news.ErrUpstream
	switch {
	case errors.Is(err, news.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, "Unknown news category")
	case errors.Is(err, news.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "News provider is not configured")
	case errors.As(err, &upstream):
		logger.Warn("[News] upstream rejected request",
			logger.String("feed", feed),
			logger.String("provider", upstream.Provider),
			logger.Int("status", upstream.Status))
		writeError(w, http.StatusBadGateway, "Error fetching news")
	default:
		logger.Error("[News] fetch failed", logger.String("feed", feed), logger.ErrorField(err))
		writeError(w, http.StatusBadGateway, "Error fetching news")
	}
}

func nonNilArticles(in []model.Article) []model.Article {
	if in == nil {
		return []model.Article{}
	}
	return in
}
