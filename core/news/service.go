package news

import (
	"context"
	"sort"

	"Inshpho/config"
	"Inshpho/model"
)

// categories maps the app's category screens to newsdata.io queries.
var categories = map[string]string{
	"sports":        "sports",
	"international": "international",
	"politics":      "politics",
}

// Categories lists the supported category names in stable order.
func Categories() []string {
	out := make([]string, 0, len(categories))
	for k := range categories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LiveSource and SearchSource are the provider shapes the Service depends on.
type LiveSource interface {
	Live(ctx context.Context) ([]model.Article, error)
}

type SearchSource interface {
	Search(ctx context.Context, q string) ([]model.Article, error)
}

// Service routes feed requests to the right provider.
type Service struct {
	live   LiveSource
	search SearchSource
}

// NewService wires a Service from explicit providers.
func NewService(live LiveSource, search SearchSource) *Service {
	return &Service{live: live, search: search}
}

// NewServiceFromConfig builds both providers from cfg.
func NewServiceFromConfig(cfg *config.Config) *Service {
	client := NewClient(cfg.NewsTimeout)
	return NewService(
		&Mediastack{
			Client:    client,
			BaseURL:   cfg.MediastackURL,
			AccessKey: cfg.MediastackKey,
			Countries: cfg.MediastackCountries,
			Languages: cfg.MediastackLanguages,
		},
		&Newsdata{
			Client:  client,
			BaseURL: cfg.NewsdataURL,
			APIKey:  cfg.NewsdataKey,
		},
	)
}

// Live returns the live feed.
func (s *Service) Live(ctx context.Context) ([]model.Article, error) {
	return s.live.Live(ctx)
}

// Category returns the feed for a named category.
func (s *Service) Category(ctx context.Context, name string) ([]model.Article, error) {
	q, ok := categories[name]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return s.search.Search(ctx, q)
}
