package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPFetcher performs the bulk tool lookup against the catalog service over
// HTTP. This is the one place in the repository where compilation-adjacent
// code does network I/O, and it runs before the compiler is invoked.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPFetcher creates a fetcher for the given bulk-lookup endpoint. A nil
// client gets a default with a conservative timeout; the compiler itself has
// no timeout concept, so any deadline lives here or in the caller's context.
func NewHTTPFetcher(endpoint string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{endpoint: endpoint, client: client}
}

// fetchRequest is the wire shape of the bulk lookup call.
type fetchRequest struct {
	IDs []string `json:"ids"`
}

// fetchResponse is the wire shape of the catalog's answer. The map may omit
// any requested id; that is the partial-snapshot case, not a failure.
type fetchResponse struct {
	Tools map[string]*Tool `json:"tools"`
}

// FetchTools posts the id set to the catalog and decodes the returned
// snapshot. Tools arriving without a recognizable health tag are normalized
// to Unknown.
func (f *HTTPFetcher) FetchTools(ctx context.Context, ids []string) (Snapshot, error) {
	payload, err := json.Marshal(fetchRequest{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog lookup returned status %d", resp.StatusCode)
	}

	var decoded fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	snapshot := make(Snapshot, len(decoded.Tools))
	for id, tool := range decoded.Tools {
		if tool == nil {
			continue
		}
		if tool.ID == "" {
			tool.ID = id
		}
		tool.Health = ParseHealth(string(tool.Health))
		snapshot[id] = tool
	}
	return snapshot, nil
}
