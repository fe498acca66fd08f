package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 512
)

// Source retrieves every record of a dataset from its remote endpoint.
type Source interface {
	FetchAll(ctx context.Context, dataset domain.DatasetName) ([]domain.Record, error)
}

type Settings struct {
	URLs    map[domain.DatasetName]string
	Timeout time.Duration
	Client  *http.Client
}

type httpSource struct {
	client *http.Client
	urls   map[domain.DatasetName]string
}

// envelope is the response shape of the demo OData endpoints.
type envelope struct {
	Value *[]domain.Record `json:"value"`
}

func NewSource(settings Settings) Source {
	client := settings.Client
	if client == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	urls := make(map[domain.DatasetName]string, len(settings.URLs))
	for k, v := range settings.URLs {
		urls[k] = v
	}

	return &httpSource{
		client: client,
		urls:   urls,
	}
}

// FetchAll performs one GET without pagination or auth. Numbers are kept as
// json.Number so they are re-serialized exactly as received.
func (s *httpSource) FetchAll(ctx context.Context, dataset domain.DatasetName) ([]domain.Record, error) {
	url, ok := s.urls[dataset]
	if !ok || url == "" {
		return nil, &domain.DataFetchError{Dataset: dataset, Err: errors.New("no source configured")}
	}

	logger := zerolog.Ctx(ctx).With().
		Str("dataset", string(dataset)).
		Str("url", url).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.DataFetchError{Dataset: dataset, URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.DataFetchError{Dataset: dataset, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.DataFetchError{
			Dataset:    dataset,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %q", body),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload envelope
	if err := dec.Decode(&payload); err != nil {
		return nil, &domain.DataFetchError{Dataset: dataset, URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Value == nil {
		return nil, &domain.DataFetchError{Dataset: dataset, URL: url, Err: errors.New("response has no value array")}
	}

	records := *payload.Value
	logger.Debug().
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched dataset records")

	return records, nil
}
