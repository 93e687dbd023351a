// Package catalog models the external tool catalog as the compiler sees it:
// a read-only snapshot of tool descriptors, fetched once per compilation by
// the caller. The compiler never talks to the catalog itself; it only
// consumes a Snapshot supplied through the Fetcher interface.
package catalog

import "context"

// Health is the catalog-reported status of a tool.
type Health string

const (
	Healthy   Health = "healthy"
	Degraded  Health = "degraded"
	Unhealthy Health = "unhealthy"
	Unknown   Health = "unknown"
)

// ParseHealth normalizes a raw health tag. Anything outside the known set
// collapses to Unknown; the catalog owns this field and the compiler only
// reads it, so an unrecognized value is not worth failing over.
func ParseHealth(raw string) Health {
	switch Health(raw) {
	case Healthy, Degraded, Unhealthy:
		return Health(raw)
	default:
		return Unknown
	}
}

// Tool is a descriptor for an external callable resource.
type Tool struct {
	ID     string   `json:"id"`
	Tags   []string `json:"tags,omitempty"`
	Health Health   `json:"health"`
}

// Snapshot is a point-in-time view of the catalog, keyed by tool id. A
// partial snapshot (requested ids missing) is legal; the resolver turns
// missing entries into diagnostics.
type Snapshot map[string]*Tool

// Lookup returns the tool for the given id, if the snapshot holds it.
func (s Snapshot) Lookup(id string) (*Tool, bool) {
	tool, ok := s[id]
	return tool, ok
}

// Fetcher is the narrow interface to the external catalog. Implementations
// perform the bulk lookup; they may do I/O, the compiler core never does.
type Fetcher interface {
	// FetchTools resolves the given tool ids into a snapshot. Missing ids
	// are simply absent from the returned snapshot, not an error.
	FetchTools(ctx context.Context, ids []string) (Snapshot, error)
}

// StaticFetcher serves a fixed, pre-loaded snapshot. It backs manifest-file
// catalogs and test fixtures.
type StaticFetcher struct {
	snapshot Snapshot
}

// NewStaticFetcher wraps an existing snapshot in the Fetcher interface.
func NewStaticFetcher(snapshot Snapshot) *StaticFetcher {
	return &StaticFetcher{snapshot: snapshot}
}

// FetchTools filters the fixed snapshot down to the requested ids.
func (f *StaticFetcher) FetchTools(_ context.Context, ids []string) (Snapshot, error) {
	out := make(Snapshot, len(ids))
	for _, id := range ids {
		if tool, ok := f.snapshot[id]; ok {
			out[id] = tool
		}
	}
	return out, nil
}
