package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/rs/zerolog"
)

// Result is the outcome of a semantic lookup. Degradation (timeout,
// non-2xx, malformed body) is a value, not an error: callers fall back
// to substring search and must never treat it as fatal.
type Result struct {
	Candidates []int64
	Degraded   bool
}

// SemanticClient ranks catalog products against a natural-language
// query and returns candidate product ids, best first.
type SemanticClient interface {
	Search(ctx context.Context, query string, topK int) Result
}

const retryBackoff = 100 * time.Millisecond

func NewSemanticClient(baseURL string, timeout time.Duration, tries int, logger zerolog.Logger) SemanticClient {
	if tries < 0 {
		tries = 0
	}
	return &semanticClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		tries:   tries,
		logger:  logger.With().Str("client", "semantic").Logger(),
	}
}

type semanticClient struct {
	baseURL string
	client  *http.Client
	tries   int
	logger  zerolog.Logger
}

type semanticHit struct {
	ID json.Number `json:"id"`
}

func (c *semanticClient) Search(ctx context.Context, query string, topK int) Result {
	reqURL := fmt.Sprintf("%s/search?q=%s&top_k=%d", c.baseURL, url.QueryEscape(query), topK)

	var hits []semanticHit
	retry := retrier.New(retrier.ConstantBackoff(c.tries, retryBackoff), nil)

	err := retry.RunCtx(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("semantic service returned status %d", resp.StatusCode)
		}

		hits = hits[:0]
		return json.NewDecoder(resp.Body).Decode(&hits)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("semantic lookup degraded")
		return Result{Degraded: true}
	}

	seen := make(map[int64]struct{}, len(hits))
	candidates := make([]int64, 0, len(hits))
	for _, hit := range hits {
		id, err := hit.ID.Int64()
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}

	return Result{Candidates: candidates}
}
