package youtube

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		expectedID string
		expectErr  bool
	}{
		{
			name:       "standard watch URL",
			url:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "watch URL with extra params",
			url:        "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "short URL",
			url:        "https://youtu.be/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "short URL with timestamp",
			url:        "https://youtu.be/dQw4w9WgXcQ?t=30",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "embed URL",
			url:        "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "shorts URL",
			url:        "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "no scheme",
			url:        "youtube.com/watch?v=dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:      "unrelated URL",
			url:       "https://vimeo.com/123456",
			expectErr: true,
		},
		{
			name:      "watch URL with short ID",
			url:       "https://www.youtube.com/watch?v=short",
			expectErr: true,
		},
		{
			name:      "empty string",
			url:       "",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractVideoID(tt.url)
			if tt.expectErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("expected ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.expectedID {
				t.Errorf("expected ID %q, got %q", tt.expectedID, id)
			}
		})
	}
}
