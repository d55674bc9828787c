// Package livescore fetches a short live score summary from an external
// scores page. The rest of the system treats it as an opaque collaborator
// that either answers quickly or fails.
package livescore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Defaults for the external scores page.
const (
	defaultTimeout = 5 * time.Second
	defaultClass   = "cb-lv-scrs-col"
	userAgent      = "Mozilla/5.0"
)

// Client scrapes the live score summary.
type Client struct {
	url        string
	class      string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds the whole fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithScoreClass overrides the CSS class identifying score nodes.
func WithScoreClass(class string) Option {
	return func(c *Client) {
		if class != "" {
			c.class = class
		}
	}
}

// NewClient creates a live score client for the given page URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		class:      defaultClass,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the first live score snippet found on the page, or
// ErrNoMatches when the page has none. Network failures and timeouts are
// returned as errors for the caller to degrade into a text message.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if node := findByClass(root, c.class); node != nil {
		if text := collapseText(node); text != "" {
			return text, nil
		}
	}
	return "", ErrNoMatches
}

// findByClass walks the parse tree depth-first for the first element
// carrying the class.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "class" && hasClass(attr.Val, class) {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(attrVal, class string) bool {
	for _, c := range strings.Fields(attrVal) {
		if c == class {
			return true
		}
	}
	return false
}

// collapseText gathers the node's text content with whitespace squeezed.
func collapseText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
