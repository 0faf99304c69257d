package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/dexdogs/physaudit/internal/model"
)

// DefaultScopesURL is the published CDM sectoral scopes table
const DefaultScopesURL = "https://cdm.unfccc.int/DOE/scopes.html"

// Scope is one id/name row lifted from the remote scopes table
type Scope struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FetchScopes downloads the sectoral scopes page and extracts id/name
// pairs, for cross-checking the embedded registry against the live source.
func FetchScopes(ctx context.Context, url, userAgent string, timeout time.Duration) ([]Scope, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scopes: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch scopes: unexpected status %d", resp.StatusCode)
	}

	return ParseScopes(resp.Body)
}

// ParseScopes extracts scope rows from an HTML table. A row qualifies when
// its first cell is a small integer and its second cell is non-empty.
func ParseScopes(r io.Reader) ([]Scope, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var scopes []Scope

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if scope, ok := scopeFromRow(n); ok {
				scopes = append(scopes, scope)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(scopes) == 0 {
		return nil, fmt.Errorf("no scope rows found")
	}
	return scopes, nil
}

// scopeFromRow interprets one table row as an id/name pair
func scopeFromRow(tr *html.Node) (Scope, bool) {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(cellText(c)))
		}
	}
	if len(cells) < 2 {
		return Scope{}, false
	}

	id, err := strconv.Atoi(strings.TrimSuffix(cells[0], "."))
	if err != nil || id < 1 || id > 99 {
		return Scope{}, false
	}
	if cells[1] == "" {
		return Scope{}, false
	}

	return Scope{
		ID:   model.NormalizeSectorID(strconv.Itoa(id)),
		Name: cells[1],
	}, true
}

// cellText collects the visible text of a table cell
func cellText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
