package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// Article is a single news item about a monitored firm.
type Article struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// NewsClient fetches recent press coverage for a firm.
type NewsClient interface {
	RecentArticles(ctx context.Context, firmName string, limit int) ([]Article, error)
}

type newsAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNewsAPIClient builds a NewsClient against the NewsAPI v2 endpoint.
func NewNewsAPIClient(baseURL, apiKey string) NewsClient {
	return &newsAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (c *newsAPIClient) RecentArticles(ctx context.Context, firmName string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("q", firmName)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", limit))

	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("build news request: %w", err))
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("news request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInternalError(fmt.Errorf("news API returned status %d", resp.StatusCode))
	}

	var decoded newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("decode news response: %w", err))
	}

	articles := make([]Article, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
