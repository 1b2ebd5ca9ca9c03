package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultDocExportBase = "https://docs.google.com/document/d"
	defaultUserAgent     = "Mozilla/5.0 (compatible; UGMSABot/1.0)"
)

// Fetcher retrieves reference text from the configured external origins.
type Fetcher struct {
	httpClient    *http.Client
	docExportBase string
	userAgent     string
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithDocExportBase overrides the document export endpoint (tests).
func WithDocExportBase(base string) FetcherOption {
	return func(f *Fetcher) { f.docExportBase = strings.TrimRight(base, "/") }
}

// WithUserAgent overrides the User-Agent sent on website fetches.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a Fetcher whose requests fail after timeout.
func NewFetcher(timeout time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient:    &http.Client{Timeout: timeout},
		docExportBase: defaultDocExportBase,
		userAgent:     defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchDoc retrieves the plain-text export of a published document.
func (f *Fetcher) FetchDoc(ctx context.Context, docID string) (string, error) {
	url := fmt.Sprintf("%s/%s/export?format=txt", f.docExportBase, docID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating doc request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching doc %s: %w", docID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching doc %s: status %d", docID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading doc %s: %w", docID, err)
	}
	return string(body), nil
}

// FetchWebsite retrieves a page and extracts its visible text, discarding
// script, style, nav and footer subtrees and normalizing line breaks.
func (f *Fetcher) FetchWebsite(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating website request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching website: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing website html: %w", err)
	}
	return extractText(doc), nil
}

var skippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
}

// extractText walks the parsed document collecting text nodes, one line per
// node, with surrounding whitespace trimmed and empty lines dropped.
func extractText(root *html.Node) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if line := strings.TrimSpace(n.Data); line != "" {
				lines = append(lines, line)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(lines, "\n")
}
