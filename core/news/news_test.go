package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Inshpho/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediastackLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/news", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "in", r.URL.Query().Get("countries"))
		assert.Equal(t, "en", r.URL.Query().Get("languages"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pagination":{},"data":[
			{"title":"Rain in Mumbai","description":"d","url":"https://x/1","image":"https://x/1.jpg","published_at":"2026-10-01T08:30:00+00:00","source":"ht"},
			{"title":"","url":"https://x/2"},
			{"title":"no link","url":""}
		]}`))
	}))
	defer srv.Close()

	m := &Mediastack{Client: NewClient(time.Second), BaseURL: srv.URL + "/v1/", AccessKey: "key", Countries: "in", Languages: "en"}
	articles, err := m.Live(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Rain in Mumbai", a.Title)
	assert.Equal(t, "https://x/1", a.URL)
	assert.Equal(t, "https://x/1.jpg", a.Image)
	assert.Equal(t, "ht", a.Source)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC), *a.PublishedAt)
}

func TestNewsdataSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/1/news", r.URL.Path)
		assert.Equal(t, "pub_key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "sports", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"status":"success","results":[
			{"title":"Cup final","description":"d","link":"https://n/1","image_url":"https://n/1.png","pubDate":"2026-10-02 17:00:00","source_id":"espn"}
		]}`))
	}))
	defer srv.Close()

	n := &Newsdata{Client: NewClient(time.Second), BaseURL: srv.URL + "/api/1", APIKey: "pub_key"}
	articles, err := n.Search(context.Background(), "sports")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "https://n/1", articles[0].URL)
	assert.Equal(t, "https://n/1.png", articles[0].Image)
	assert.Equal(t, "espn", articles[0].Source)
	require.NotNil(t, articles[0].PublishedAt)
	assert.Equal(t, 17, articles[0].PublishedAt.Hour())
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := &Newsdata{Client: NewClient(time.Second), BaseURL: srv.URL, APIKey: "k"}
	_, err := n.Search(context.Background(), "sports")

	var upstream *ErrUpstream
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Equal(t, "newsdata", upstream.Provider)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	m := &Mediastack{Client: NewClient(time.Second), BaseURL: srv.URL, AccessKey: "k"}
	_, err := m.Live(context.Background())
	assert.Error(t, err)
}

func TestProvidersRequireKeys(t *testing.T) {
	_, err := (&Mediastack{Client: NewClient(time.Second)}).Live(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = (&Newsdata{Client: NewClient(time.Second)}).Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

type stubSearch struct{ lastQuery string }

func (s *stubSearch) Search(_ context.Context, q string) ([]model.Article, error) {
	s.lastQuery = q
	return []model.Article{{Title: q, URL: "u"}}, nil
}

func TestServiceCategory(t *testing.T) {
	search := &stubSearch{}
	svc := NewService(nil, search)

	articles, err := svc.Category(context.Background(), "international")
	require.NoError(t, err)
	assert.Equal(t, "international", search.lastQuery)
	assert.Len(t, articles, 1)

	_, err = svc.Category(context.Background(), "weather")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoriesSorted(t *testing.T) {
	assert.Equal(t, []string{"international", "politics", "sports"}, Categories())
}

func TestParseTime(t *testing.T) {
	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("yesterday"))
	assert.NotNil(t, parseTime("2026-10-01T08:30:00Z"))
	assert.NotNil(t, parseTime("2026-10-01T08:30:00+0530"))
}
