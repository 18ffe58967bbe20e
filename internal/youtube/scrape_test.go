package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTranscriptPageSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("v"); got != "dQw4w9WgXcQ" {
			t.Errorf("expected video ID query param, got %q", got)
		}
		w.Write([]byte(`<html><body>
			<h1>Transcript</h1>
			<div>
				<span class="transcript-segment" data-start="0">hello everyone</span>
				<span class="transcript-segment" data-start="2"> welcome <b>back</b> </span>
				<span class="other">sidebar noise</span>
			</div>
		</body></html>`))
	}))
	defer server.Close()

	source := &TranscriptPageSource{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	text, err := source.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello everyone welcome back" {
		t.Errorf("expected joined segments, got %q", text)
	}
}

func TestTranscriptPageSourceNoSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Video not found</p></body></html>`))
	}))
	defer server.Close()

	source := &TranscriptPageSource{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := source.Fetch(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Error("expected error for page without segments")
	}
}

func TestTranscriptAPISource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body struct {
			VideoID string `json:"video_id"`
			Format  bool   `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body.VideoID != WatchURL("dQw4w9WgXcQ") {
			t.Errorf("expected watch URL in request, got %q", body.VideoID)
		}
		w.Write([]byte(`{"transcript":"  hello from the transcript api  "}`))
	}))
	defer server.Close()

	source := &TranscriptAPISource{
		apiURL:     server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	text, err := source.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello from the transcript api" {
		t.Errorf("expected trimmed transcript, got %q", text)
	}
}

func TestTranscriptAPISourceErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := &TranscriptAPISource{
		apiURL:     server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := source.Fetch(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Error("expected error for non-200 API response")
	}
}
