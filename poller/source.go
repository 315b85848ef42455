package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// HTTPSource fetches the contributions listing over HTTP. The remote may
// answer with either a bare array of contribution records or an object
// wrapping them under a "contributions" key; both are accepted.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: http.DefaultClient}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.ContributionWithProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contributions listing returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return DecodeContributions(body)
}

// DecodeContributions parses either accepted listing payload shape.
func DecodeContributions(data []byte) ([]models.ContributionWithProduct, error) {
	var bare []models.ContributionWithProduct
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Contributions []models.ContributionWithProduct `json:"contributions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("unrecognized contributions payload: %w", err)
	}
	return wrapped.Contributions, nil
}
