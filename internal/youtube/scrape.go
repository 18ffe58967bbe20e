package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const transcriptPageURL = "https://youtubetotranscript.com/transcript"

// TranscriptPageSource scrapes youtubetotranscript.com, which renders the
// transcript as a page of segment spans. Last resort in the chain.
type TranscriptPageSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewTranscriptPageSource() *TranscriptPageSource {
	return &TranscriptPageSource{
		baseURL: transcriptPageURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *TranscriptPageSource) Name() string { return "transcript-page" }

func (s *TranscriptPageSource) Fetch(ctx context.Context, videoID string) (string, error) {
	pageURL := s.baseURL + "?v=" + videoID + "&current_language_code=en"

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript page returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse transcript page: %w", err)
	}

	text := collectTranscriptSegments(doc)
	if text == "" {
		return "", fmt.Errorf("no transcript segments found in page")
	}
	return text, nil
}

// collectTranscriptSegments walks the parsed page gathering the text of every
// transcript segment span.
func collectTranscriptSegments(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" && hasClass(n, "transcript-segment") {
			segment := strings.TrimSpace(textContent(n))
			if segment != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(segment)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, className string) bool {
	return strings.Contains(getAttr(n, "class"), className)
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
