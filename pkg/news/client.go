package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jmherd/daily-briefing/internal/model"
)

const everythingURL = "https://newsapi.org/v2/everything"

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchTopics queries recent headlines for every topic in the profile. Topics
// are fetched concurrently and isolated from each other: a failed topic maps
// to an empty slice, never aborting its siblings. A missing API key is a
// bundle-level sentinel; callers must check Err before iterating Topics.
// The same story may appear under two topics; no dedup is performed.
func (c *Client) FetchTopics(ctx context.Context, profile model.Profile) model.NewsBundle {
	if c.apiKey == "" {
		return model.NewsBundle{Err: "News API key not found"}
	}

	bundle := model.NewsBundle{Topics: make(map[string][]model.Article, len(profile.Topics))}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, topic := range profile.Topics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()

			articles, err := c.fetchTopic(ctx, topic, profile.MaxArticlesPerTopic)
			if err != nil {
				articles = []model.Article{}
			}

			mu.Lock()
			bundle.Topics[topic] = articles
			mu.Unlock()
		}(topic)
	}

	wg.Wait()
	return bundle
}

func (c *Client) fetchTopic(ctx context.Context, topic string, pageSize int) ([]model.Article, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, "GET", everythingURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch: HTTP %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	articles := make([]model.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, model.Article{
			Title:  item.Title,
			Source: item.Source.Name,
			URL:    item.URL,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title  string        `json:"title"`
	URL    string        `json:"url"`
	Source newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
