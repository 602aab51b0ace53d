// Package market fetches quote batches from the supported upstream feeds.
package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devchen-org/stock-monitor/internal/models"
)

// Provider fetches quotes for a batch of symbols. A transport failure is
// returned as an error; individual malformed records are dropped silently,
// so a symbol can be absent from an otherwise successful result.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, codes []string) (map[string]models.Quote, error)
}

// DefaultTimeout bounds a single quote request so an unresponsive feed
// cannot stall the monitor cycle indefinitely.
const DefaultTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// ForID selects the provider for a backend id from Settings. Unknown ids
// fall back to Sina, the historical default.
func ForID(id string) Provider {
	if id == "tencent" {
		return NewTencentProvider()
	}
	return NewSinaProvider()
}

func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
