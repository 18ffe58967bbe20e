package youtube

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const oembedEndpoint = "https://www.youtube.com/oembed"

// VideoMetadata is what the public oEmbed endpoint reports about a video.
type VideoMetadata struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type MetadataFetcher struct {
	endpoint   string
	httpClient *http.Client
}

func NewMetadataFetcher() *MetadataFetcher {
	return &MetadataFetcher{
		endpoint: oembedEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchMetadata asks the oEmbed endpoint for the video title and channel.
// Metadata is decoration on top of the transcript, so every failure path
// returns empty metadata instead of an error.
func (f *MetadataFetcher) FetchMetadata(ctx context.Context, videoURL string) VideoMetadata {
	endpoint := f.endpoint + "?url=" + url.QueryEscape(videoURL) + "&format=json"

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return VideoMetadata{}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Printf("[OEMBED] fetch failed for %s: %v", videoURL, err)
		return VideoMetadata{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OEMBED] status %d for %s", resp.StatusCode, videoURL)
		return VideoMetadata{}
	}

	var meta VideoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		log.Printf("[OEMBED] decode failed for %s: %v", videoURL, err)
		return VideoMetadata{}
	}
	return meta
}
