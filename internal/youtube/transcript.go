package youtube

import (
	"context"
	"errors"
	"html"
	"log"
	"regexp"
	"strings"
)

var ErrNoTranscript = errors.New("no transcript available from any source")

// Anything at or below this length is caption noise, not a transcript.
const minTranscriptLength = 20

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// TranscriptSource is one way of obtaining a transcript for a video ID.
// Sources are interchangeable; the Resolver tries them in priority order.
type TranscriptSource interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (string, error)
}

// TranscriptCache is an optional store consulted before the source chain
// runs and written through after a successful resolve.
type TranscriptCache interface {
	Get(ctx context.Context, videoID string) (string, error)
	Put(ctx context.Context, videoID, source, content string) error
}

type Resolver struct {
	sources []TranscriptSource
	cache   TranscriptCache
}

// NewResolver builds the default source chain: native caption tracks first,
// then yt-dlp, then the two public transcript services.
func NewResolver(ytdlpPath string) *Resolver {
	return &Resolver{
		sources: []TranscriptSource{
			NewCaptionSource(),
			NewYtdlpSource(ytdlpPath),
			NewTranscriptAPISource(),
			NewTranscriptPageSource(),
		},
	}
}

// NewResolverWithSources exists for wiring custom chains in tests.
func NewResolverWithSources(sources ...TranscriptSource) *Resolver {
	return &Resolver{sources: sources}
}

// WithCache attaches a transcript cache. The resolver works without one.
func (r *Resolver) WithCache(cache TranscriptCache) *Resolver {
	r.cache = cache
	return r
}

// Resolve returns the first usable transcript for the video, cleaned of
// caption artifacts. Individual source failures are logged and swallowed;
// only full exhaustion of the chain is an error.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (string, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, videoID); err == nil && cached != "" {
			log.Printf("[RESOLVER] cache hit for %s (%d chars)", videoID, len(cached))
			return cached, nil
		}
	}

	for _, source := range r.sources {
		text, err := source.Fetch(ctx, videoID)
		if err != nil {
			log.Printf("[RESOLVER] %s failed for %s: %v", source.Name(), videoID, err)
			continue
		}

		cleaned := CleanTranscript(text)
		if len(cleaned) <= minTranscriptLength {
			log.Printf("[RESOLVER] %s returned too little text for %s (%d chars)", source.Name(), videoID, len(cleaned))
			continue
		}

		log.Printf("[RESOLVER] %s resolved %s (%d chars)", source.Name(), videoID, len(cleaned))
		if r.cache != nil {
			if err := r.cache.Put(ctx, videoID, source.Name(), cleaned); err != nil {
				log.Printf("[RESOLVER] failed to cache transcript for %s: %v", videoID, err)
			}
		}
		return cleaned, nil
	}

	return "", ErrNoTranscript
}

var (
	bracketMarkerRE = regexp.MustCompile(`\[[^\]]*\]`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// CleanTranscript decodes HTML entities and strips the non-speech markers
// caption tracks carry, like music notes and [Applause] cues. Entities are
// decoded twice because timedtext payloads are often double-encoded.
func CleanTranscript(text string) string {
	text = html.UnescapeString(html.UnescapeString(text))
	text = strings.ReplaceAll(text, "♪", " ")
	text = bracketMarkerRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}
