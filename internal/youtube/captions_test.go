package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func watchPageWithTracks(tracksJSON string) []byte {
	return []byte(`<html><body><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":` + tracksJSON + `}},"videoDetails":{"title":"t"}};</script></body></html>`)
}

func TestPickCaptionTrack(t *testing.T) {
	tests := []struct {
		name        string
		page        []byte
		expectedURL string
		expectErr   bool
	}{
		{
			name:        "single track",
			page:        watchPageWithTracks(`[{"baseUrl":"https://yt/tt?lang=en","languageCode":"en","kind":"asr"}]`),
			expectedURL: "https://yt/tt?lang=en",
		},
		{
			name: "manual english beats auto english",
			page: watchPageWithTracks(`[
				{"baseUrl":"https://yt/auto","languageCode":"en","kind":"asr"},
				{"baseUrl":"https://yt/manual","languageCode":"en"}
			]`),
			expectedURL: "https://yt/manual",
		},
		{
			name: "manual non-english beats auto english",
			page: watchPageWithTracks(`[
				{"baseUrl":"https://yt/auto-en","languageCode":"en","kind":"asr"},
				{"baseUrl":"https://yt/manual-de","languageCode":"de"}
			]`),
			expectedURL: "https://yt/manual-de",
		},
		{
			name: "english preferred among manual tracks",
			page: watchPageWithTracks(`[
				{"baseUrl":"https://yt/manual-de","languageCode":"de"},
				{"baseUrl":"https://yt/manual-en","languageCode":"en-US"}
			]`),
			expectedURL: "https://yt/manual-en",
		},
		{
			name:      "no captions object",
			page:      []byte(`<html>ytInitialPlayerResponse = {"videoDetails":{"title":"t"}};</html>`),
			expectErr: true,
		},
		{
			name:      "marker missing",
			page:      []byte(`<html><body>nothing here</body></html>`),
			expectErr: true,
		},
		{
			name:      "empty track list",
			page:      watchPageWithTracks(`[]`),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := pickCaptionTrack(tt.page)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if track.BaseURL != tt.expectedURL {
				t.Errorf("expected track %q, got %q", tt.expectedURL, track.BaseURL)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple object",
			input:    `{"a":1};rest`,
			expected: `{"a":1}`,
		},
		{
			name:     "nested objects",
			input:    `{"a":{"b":{"c":2}}}tail`,
			expected: `{"a":{"b":{"c":2}}}`,
		},
		{
			name:     "braces inside strings ignored",
			input:    `{"a":"}{","b":1}x`,
			expected: `{"a":"}{","b":1}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"a":"say \"}\" loud"}x`,
			expected: `{"a":"say \"}\" loud"}`,
		},
		{
			name:  "unterminated object",
			input: `{"a":1`,
		},
		{
			name:  "not an object",
			input: `[1,2,3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONObject([]byte(tt.input))
			if string(got) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(got))
			}
		})
	}
}

func TestCaptionTrackScore(t *testing.T) {
	manualEN := captionTrack{LanguageCode: "en", Kind: ""}
	autoEN := captionTrack{LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{LanguageCode: "de", Kind: ""}
	autoDE := captionTrack{LanguageCode: "de", Kind: "asr"}

	order := []captionTrack{manualEN, manualDE, autoEN, autoDE}
	for i := 0; i < len(order)-1; i++ {
		if captionTrackScore(order[i]) <= captionTrackScore(order[i+1]) {
			t.Errorf("expected %+v to outrank %+v", order[i], order[i+1])
		}
	}
}

func TestBestCaptionTrackStableForTies(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "first", LanguageCode: "en"},
		{BaseURL: "second", LanguageCode: "en-GB"},
	}
	if got := bestCaptionTrack(tracks); got.BaseURL != "first" {
		t.Errorf("expected first track to win ties, got %q", got.BaseURL)
	}
}

func TestFetchTimedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.0" dur="2.1">hello everyone</text>
	<text start="2.1" dur="1.8">   </text>
	<text start="3.9" dur="2.4">welcome back</text>
</transcript>`))
	}))
	defer server.Close()

	source := NewCaptionSource()
	text, err := source.fetchTimedText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello everyone welcome back" {
		t.Errorf("expected joined segment text, got %q", text)
	}
}

func TestFetchTimedTextBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewCaptionSource()
	if _, err := source.fetchTimedText(context.Background(), server.URL); err == nil {
		t.Error("expected error for non-200 timedtext response")
	}
}
