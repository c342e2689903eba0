package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SignalSource reads the Signal realtime keyword JSON API, the one public
// replacement for the retired portal realtime-search rankings.
type SignalSource struct {
	name   string
	url    string
	limit  int
	client *http.Client
}

type signalResponse struct {
	Top10 []struct {
		Rank    int    `json:"rank"`
		Keyword string `json:"keyword"`
	} `json:"top10"`
}

func NewSignalSource(name, url string, limit int, client *http.Client) *SignalSource {
	return &SignalSource{name: name, url: url, limit: limit, client: client}
}

func (s *SignalSource) Name() string { return s.name }

func (s *SignalSource) Fetch(ctx context.Context) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	var payload signalResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	var candidates []Candidate
	for _, item := range payload.Top10 {
		if len(candidates) >= s.limit {
			break
		}
		if item.Keyword == "" {
			continue
		}
		rank := item.Rank
		if rank <= 0 {
			rank = len(candidates) + 1
		}
		candidates = append(candidates, Candidate{
			Text:   item.Keyword,
			Source: s.name,
			Rank:   rank,
		})
	}
	return candidates, nil
}
