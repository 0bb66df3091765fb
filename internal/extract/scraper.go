package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"golang.org/x/net/html"
)

const (
	fetchTimeout = 15 * time.Second
	maxBodyBytes = 4 << 20 // 4 MiB is plenty for a job-posting page

	// Some boards serve a stub page to unknown clients.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"
)

// Scraper fetches a job-posting URL and extracts the text to parse plus any
// fields it can read directly from the page structure.
type Scraper struct {
	client *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads the posting page.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	return string(body), nil
}

// ExtractText pulls the description text and structured metadata out of the
// page, dispatching on the job board's hostname. Unknown hosts fall back to
// the whole body text.
func (s *Scraper) ExtractText(rawHTML, pageURL string) (string, domain.ExtractedFields) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", domain.ExtractedFields{}
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	switch {
	case strings.Contains(host, "indeed."):
		return extractIndeed(doc)
	case strings.Contains(host, "linkedin."):
		return extractLinkedIn(doc)
	}

	return textOf(doc), domain.ExtractedFields{}
}

func extractIndeed(doc *html.Node) (string, domain.ExtractedFields) {
	meta := domain.ExtractedFields{
		Position: textOf(findByClass(doc, "h1", "jobsearch-JobInfoHeader-title")),
		Company:  textOf(findByClass(doc, "div", "jobsearch-InlineCompanyRating")),
	}
	body := textOf(findByID(doc, "jobDescriptionText"))
	if body == "" {
		body = textOf(doc)
	}
	return body, meta
}

func extractLinkedIn(doc *html.Node) (string, domain.ExtractedFields) {
	meta := domain.ExtractedFields{
		Position: textOf(findByClass(doc, "h1", "top-card-layout__title")),
		Company:  textOf(findByClass(doc, "a", "topcard__org-name-link")),
		Location: textOf(findByClass(doc, "span", "topcard__flavor--bullet")),
	}
	body := textOf(findByClass(doc, "div", "description__text"))
	if body == "" {
		body = textOf(findByClass(doc, "div", "show-more-less-html__markup"))
	}
	if body == "" {
		body = textOf(doc)
	}
	return body, meta
}

// findByClass returns the first element with the given tag carrying the class.
func findByClass(n *html.Node, tag, class string) *html.Node {
	return find(n, func(node *html.Node) bool {
		if node.Type != html.ElementNode || node.Data != tag {
			return false
		}
		for _, attr := range node.Attr {
			if attr.Key == "class" && hasClass(attr.Val, class) {
				return true
			}
		}
		return false
	})
}

// hasClass matches one class within a space-separated class attribute. A
// prefix match is enough; boards suffix their classes with build hashes.
func hasClass(attrVal, class string) bool {
	for _, c := range strings.Fields(attrVal) {
		if c == class || strings.HasPrefix(c, class) {
			return true
		}
	}
	return false
}

func findByID(n *html.Node, id string) *html.Node {
	return find(n, func(node *html.Node) bool {
		if node.Type != html.ElementNode {
			return false
		}
		for _, attr := range node.Attr {
			if attr.Key == "id" && attr.Val == id {
				return true
			}
		}
		return false
	})
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// textOf collapses the rendered text of a subtree, skipping scripts and
// styles, with single spaces between fragments.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			text := strings.TrimSpace(node.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
