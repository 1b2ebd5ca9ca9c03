package knowledge

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/ugmsa/assistbot/internal/metrics"
)

// Cache lazily populates the knowledge blob on first use and serves it for
// the rest of the process lifetime. There is deliberately no refresh: stale
// content persists until restart, matching the behavior stakeholders signed
// off on.
type Cache struct {
	mu      sync.Mutex
	fetcher *Fetcher
	docIDs  []string
	siteURL string
	blob    *Blob
}

// NewCache creates a Cache over the configured document IDs and website URL.
func NewCache(fetcher *Fetcher, docIDs []string, websiteURL string) *Cache {
	return &Cache{
		fetcher: fetcher,
		docIDs:  docIDs,
		siteURL: websiteURL,
	}
}

// Get returns the cached blob. The first successful call fetches every
// configured source in order; the mutex is held across the whole fetch
// sequence, so exactly one caller populates while concurrent first callers
// block until it finishes. Individual source failures are logged and
// tolerated; only when every source fails does Get report absent knowledge,
// leaving the cache unpopulated so a later call retries.
func (c *Cache) Get(ctx context.Context) (*Blob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blob != nil {
		return c.blob, true
	}

	var sections []Section

	for _, id := range c.docIDs {
		text, err := c.fetcher.FetchDoc(ctx, id)
		if err != nil {
			slog.Warn("knowledge doc fetch failed", "doc_id", id, "error", err)
			metrics.KnowledgeFetchesTotal.WithLabelValues("doc", "error").Inc()
			continue
		}
		metrics.KnowledgeFetchesTotal.WithLabelValues("doc", "ok").Inc()
		slog.Info("knowledge doc loaded", "doc_id", id, "chars", len(text))
		sections = append(sections, Section{Label: "OFFICIAL DOCUMENT", Text: text})
	}

	if c.siteURL != "" {
		text, err := c.fetcher.FetchWebsite(ctx, c.siteURL)
		if err != nil {
			slog.Warn("knowledge website fetch failed", "url", c.siteURL, "error", err)
			metrics.KnowledgeFetchesTotal.WithLabelValues("website", "error").Inc()
		} else {
			metrics.KnowledgeFetchesTotal.WithLabelValues("website", "ok").Inc()
			slog.Info("knowledge website loaded", "url", c.siteURL, "chars", len(text))
			sections = append(sections, Section{Label: websiteLabel(c.siteURL), Text: text})
		}
	}

	if len(sections) == 0 {
		slog.Warn("no knowledge sources loaded")
		return nil, false
	}

	c.blob = newBlob(sections)
	slog.Info("knowledge base ready", "sources", len(sections), "chars", len(c.blob.Text))
	return c.blob, true
}

func websiteLabel(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return "UGMSA WEBSITE (" + u.Host + ")"
	}
	return "UGMSA WEBSITE"
}
