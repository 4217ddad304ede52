package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

// NewNewsAPIClient returns a client for the NewsAPI "everything" endpoint.
// With an empty key the client is disabled and Search is a no-op.
func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *NewsAPIClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

func (c *NewsAPIClient) Search(query, language string, maxItems int) ([]Item, error) {
	if !c.Enabled() || query == "" {
		return nil, nil
	}

	if maxItems < 1 {
		maxItems = 5
	}

	endpoint := fmt.Sprintf(
		"https://newsapi.org/v2/everything?q=%s&language=%s&sortBy=publishedAt&pageSize=%d&apiKey=%s",
		url.QueryEscape(query), url.QueryEscape(language), maxItems, c.apiKey,
	)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	items := make([]Item, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		if len(items) >= maxItems {
			break
		}

		date := ""
		if publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			date = publishedAt.Format("2006-01-02")
		}

		items = append(items, Item{
			Title:       a.Title,
			Source:      a.Source.Name,
			Date:        date,
			Description: a.Description,
			URL:         a.URL,
		})
	}

	return items, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
