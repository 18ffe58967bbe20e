package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	watchPageReadLimit   = 6 * 1024 * 1024
	timedTextReadLimit   = 512 * 1024
)

// CaptionSource reads the caption tracks YouTube embeds in the watch page:
// the player response JSON lists a timedtext URL per language.
type CaptionSource struct {
	httpClient *http.Client
}

func NewCaptionSource() *CaptionSource {
	return &CaptionSource{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *CaptionSource) Name() string { return "captions" }

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

func (s *CaptionSource) Fetch(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", WatchURL(videoID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, watchPageReadLimit))
	if err != nil {
		return "", fmt.Errorf("failed to read watch page: %w", err)
	}

	track, err := pickCaptionTrack(body)
	if err != nil {
		return "", err
	}

	return s.fetchTimedText(ctx, track.BaseURL)
}

// pickCaptionTrack digs the player response JSON out of the watch page HTML
// and selects a caption track.
func pickCaptionTrack(page []byte) (captionTrack, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return captionTrack{}, errors.New("player response not found in watch page")
	}

	jsonData := extractJSONObject(page[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return captionTrack{}, errors.New("failed to extract player response JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return captionTrack{}, fmt.Errorf("failed to decode player response: %w", err)
	}
	if player.Captions == nil {
		return captionTrack{}, errors.New("video has no captions")
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return captionTrack{}, errors.New("no caption tracks listed")
	}

	return bestCaptionTrack(tracks), nil
}

// bestCaptionTrack prefers manually authored tracks over auto-generated ones
// and English over other languages.
func bestCaptionTrack(tracks []captionTrack) captionTrack {
	best := tracks[0]
	bestScore := captionTrackScore(best)
	for _, track := range tracks[1:] {
		if score := captionTrackScore(track); score > bestScore {
			best, bestScore = track, score
		}
	}
	return best
}

func captionTrackScore(track captionTrack) int {
	score := 0
	if track.Kind != "asr" {
		score += 2
	}
	if strings.HasPrefix(track.LanguageCode, "en") {
		score++
	}
	return score
}

func (s *CaptionSource) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, timedTextReadLimit))
	if err != nil {
		return "", fmt.Errorf("failed to read timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("failed to parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// extractJSONObject returns the complete JSON object starting at b[0] == '{'
// by tracking brace depth outside string literals.
func extractJSONObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
