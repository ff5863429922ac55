package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPRetriever queries an external snippet service for context relevant to a
// user message. Callers treat every failure here as "no context available".
type HTTPRetriever struct {
	client *resty.Client
	topK   int
}

func NewHTTPRetriever(baseURL string, topK int) *HTTPRetriever {
	return &HTTPRetriever{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		topK:   topK,
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type searchResponse struct {
	Snippets []string `json:"snippets"`
}

func (retriever *HTTPRetriever) Query(ctx context.Context, text string) ([]string, error) {
	var result searchResponse

	res, err := retriever.client.R().
		SetContext(ctx).
		SetBody(searchRequest{Query: text, TopK: retriever.topK}).
		SetResult(&result).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("error querying retrieval service: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("retrieval service returned status %d", res.StatusCode())
	}

	return result.Snippets, nil
}
