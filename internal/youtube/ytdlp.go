package youtube

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const ytdlpTimeout = 20 * time.Second

// YtdlpSource shells out to yt-dlp for subtitles. It is the fallback for
// videos whose caption endpoints refuse datacenter traffic.
type YtdlpSource struct {
	binPath string
}

// NewYtdlpSource resolves the yt-dlp binary. An empty path means look it up
// on PATH. A missing binary does not break construction; the source just
// fails per fetch and the resolver moves on.
func NewYtdlpSource(binPath string) *YtdlpSource {
	if binPath == "" {
		if found, err := exec.LookPath("yt-dlp"); err == nil {
			binPath = found
		}
	}
	if binPath != "" {
		log.Printf("[YTDLP] using binary at %s", binPath)
	}
	return &YtdlpSource{binPath: binPath}
}

func (s *YtdlpSource) Name() string { return "yt-dlp" }

func (s *YtdlpSource) Fetch(ctx context.Context, videoID string) (string, error) {
	if s.binPath == "" {
		return "", fmt.Errorf("yt-dlp not found in PATH")
	}

	tempDir, err := os.MkdirTemp("", "thumbforge-subs-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	ctx, cancel := context.WithTimeout(ctx, ytdlpTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.binPath,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", "en.*",
		"--sub-format", "vtt",
		"-o", filepath.Join(tempDir, "%(id)s"),
		WatchURL(videoID),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	matches, err := filepath.Glob(filepath.Join(tempDir, "*.vtt"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("yt-dlp wrote no subtitle files")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return parseVTT(string(data)), nil
}

var vttTagRE = regexp.MustCompile(`<[^>]*>`)

// parseVTT keeps the spoken lines of a WEBVTT file, dropping headers, cue
// timings and inline positioning tags. Auto-generated subs repeat each line
// in consecutive cues, so adjacent duplicates collapse.
func parseVTT(data string) string {
	var sb strings.Builder
	var prev string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "WEBVTT" ||
			strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") ||
			strings.HasPrefix(line, "NOTE") ||
			strings.Contains(line, "-->") {
			continue
		}
		line = strings.TrimSpace(vttTagRE.ReplaceAllString(line, ""))
		if line == "" || line == prev {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		prev = line
	}
	return sb.String()
}
