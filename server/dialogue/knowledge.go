package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// KnowledgeSource tags where a knowledge result came from.
type KnowledgeSource string

const (
	SourceLocal  KnowledgeSource = "local"
	SourceRemote KnowledgeSource = "remote"
	SourceNone   KnowledgeSource = "none"
)

// KnowledgeEntry maps a lowercase topic key to canned explanatory text.
// The table is fixed at startup and never mutated.
type KnowledgeEntry struct {
	Key  string
	Text string
}

// KnowledgeResult is the outcome of a resolution attempt. Text is always
// usable prose; Source tells the caller how it was obtained.
type KnowledgeResult struct {
	Query  string          `json:"query"`
	Text   string          `json:"result"`
	Source KnowledgeSource `json:"source"`
}

// RemoteLookup is the external encyclopedia collaborator. Summary fetches an
// extract for an exact title; Search resolves a free-text query to the top
// matching title and description.
type RemoteLookup interface {
	Summary(ctx context.Context, title string) (string, error)
	Search(ctx context.Context, query string) (title, description string, err error)
}

const (
	remoteExtractCap = 300
	remoteCacheSize  = 256
	remoteCacheTTL   = 10 * time.Minute
)

// Resolver answers free-text queries from the static knowledge table first
// and the remote encyclopedia second. No caller may depend on remote success
// for correctness: every failure path degrades to a textual fallback.
// Successful remote lookups are memoized in a small LRU.
type Resolver struct {
	entries []KnowledgeEntry
	remote  RemoteLookup
	cache   *lookupCache
}

// NewResolver creates a resolver over the given table. A nil table falls
// back to Adam's default knowledge base; a nil remote disables the remote
// path entirely.
func NewResolver(entries []KnowledgeEntry, remote RemoteLookup) *Resolver {
	if entries == nil {
		entries = DefaultKnowledgeBase()
	}
	return &Resolver{
		entries: entries,
		remote:  remote,
		cache:   newLookupCache(remoteCacheSize, remoteCacheTTL),
	}
}

// Topics returns the static table's keys in resolution order.
func (r *Resolver) Topics() []string {
	topics := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		topics = append(topics, entry.Key)
	}
	return topics
}

// Resolve maps a query to a knowledge snippet. The static table wins on the
// first key that is a substring of the lowercased query; otherwise the
// remote lookup is attempted (exact-title summary, then fuzzy top-1 search).
// Resolve never fails: transport errors degrade to the placeholder result.
func (r *Resolver) Resolve(ctx context.Context, query string) KnowledgeResult {
	lower := strings.ToLower(query)

	for _, entry := range r.entries {
		if strings.Contains(lower, entry.Key) {
			return KnowledgeResult{
				Query:  query,
				Text:   "From Adam's ancient knowledge: " + entry.Text,
				Source: SourceLocal,
			}
		}
	}

	if r.remote != nil {
		key := strings.TrimSpace(lower)
		if cached, ok := r.cache.get(key); ok {
			cached.Query = query
			return cached
		}
		if result, ok := r.resolveRemote(ctx, query); ok {
			r.cache.set(key, result)
			return result
		}
	}

	return KnowledgeResult{
		Query:  query,
		Text:   fmt.Sprintf("The mists of time obscure this knowledge, but perhaps we can explore '%s' together through conversation.", query),
		Source: SourceNone,
	}
}

func (r *Resolver) resolveRemote(ctx context.Context, query string) (KnowledgeResult, bool) {
	extract, err := r.remote.Summary(ctx, query)
	if err == nil && extract != "" {
		return KnowledgeResult{
			Query:  query,
			Text:   "From the ancient scrolls (Wikipedia): " + truncateRunes(extract, remoteExtractCap) + "...",
			Source: SourceRemote,
		}, true
	}
	if err != nil {
		slog.Debug("exact-title knowledge lookup failed", "query", query, "error", err)
	}

	title, description, err := r.remote.Search(ctx, query)
	if err != nil || title == "" {
		if err != nil {
			slog.Warn("remote knowledge lookup failed", "query", query, "error", err)
		}
		return KnowledgeResult{}, false
	}
	if description == "" {
		description = "A topic of great interest."
	}
	return KnowledgeResult{
		Query:  query,
		Text:   fmt.Sprintf("Found in the ancient scrolls: %s - %s", title, description),
		Source: SourceRemote,
	}, true
}
