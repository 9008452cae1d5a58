package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jobpulse/internal/app"
	"jobpulse/internal/common"
)

// HTTPClient talks to the platform's candidate-recommendation service. The
// service is an opaque oracle: it decides who to recommend, we only relay.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *HTTPClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: trimmed, httpClient: httpClient}
}

type recommendationResponse struct {
	Candidates []struct {
		CandidateID string `json:"candidate_id"`
		Email       string `json:"email"`
	} `json:"candidates"`
}

func (c *HTTPClient) RecommendedCandidates(ctx context.Context, jobID common.UUID) ([]app.RecommendedCandidate, error) {
	if c.baseURL == "" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recommendations/"+jobID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create recommendation request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send recommendation request: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recommendation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation service returned %d", resp.StatusCode)
	}
	var parsed recommendationResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode recommendation response: %w", err)
	}
	contacts := make([]app.RecommendedCandidate, 0, len(parsed.Candidates))
	for _, entry := range parsed.Candidates {
		id, err := common.ParseUUID(entry.CandidateID)
		if err != nil {
			continue
		}
		contacts = append(contacts, app.RecommendedCandidate{CandidateID: id, Email: entry.Email})
	}
	return contacts, nil
}
