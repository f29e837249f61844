package news

import (
	"context"
	"net/url"

	"Inshpho/model"
)

// Mediastack serves the live feed.
type Mediastack struct {
	Client    *Client
	BaseURL   string
	AccessKey string
	Countries string
	Languages string
}

type mediastackResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"published_at"`
		Source      string `json:"source"`
	} `json:"data"`
}

// Live fetches the latest articles for the configured countries and languages.
func (m *Mediastack) Live(ctx context.Context) ([]model.Article, error) {
	if m.AccessKey == "" {
		return nil, ErrNotConfigured
	}
	params := url.Values{}
	params.Set("access_key", m.AccessKey)
	if m.Countries != "" {
		params.Set("countries", m.Countries)
	}
	if m.Languages != "" {
		params.Set("languages", m.Languages)
	}

	var resp mediastackResponse
	if err := m.Client.getJSON(ctx, "mediastack", joinPath(m.BaseURL, "news"), params, &resp); err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(resp.Data))
	for _, d := range resp.Data {
		articles = append(articles, model.Article{
			Title:       d.Title,
			Description: d.Description,
			URL:         d.URL,
			Image:       d.Image,
			PublishedAt: parseTime(d.PublishedAt),
			Source:      d.Source,
		})
	}
	return keepUsable(articles), nil
}

// Newsdata serves the keyword feeds behind the category screens.
type Newsdata struct {
	Client  *Client
	BaseURL string
	APIKey  string
}

type newsdataResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		ImageURL    string `json:"image_url"`
		PubDate     string `json:"pubDate"`
		SourceID    string `json:"source_id"`
	} `json:"results"`
}

// Search fetches articles matching query q.
func (n *Newsdata) Search(ctx context.Context, q string) ([]model.Article, error) {
	if n.APIKey == "" {
		return nil, ErrNotConfigured
	}
	params := url.Values{}
	params.Set("apikey", n.APIKey)
	params.Set("q", q)

	var resp newsdataResponse
	if err := n.Client.getJSON(ctx, "newsdata", joinPath(n.BaseURL, "news"), params, &resp); err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(resp.Results))
	for _, r := range resp.Results {
		articles = append(articles, model.Article{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.Link,
			Image:       r.ImageURL,
			PublishedAt: parseTime(r.PubDate),
			Source:      r.SourceID,
		})
	}
	return keepUsable(articles), nil
}
