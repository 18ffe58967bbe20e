package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TranscriptRepo caches resolved transcripts keyed by video ID, so repeat
// analyses of the same video skip the source chain entirely.
type TranscriptRepo struct {
	db *DB
}

func NewTranscriptRepo(db *DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// Put stores or refreshes the cached transcript for a video.
func (r *TranscriptRepo) Put(ctx context.Context, videoID, source, content string) error {
	fetchedAt := time.Now().UTC()

	if r.db.dbType == "postgres" {
		query := `
			INSERT INTO transcripts (video_id, source, content, fetched_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (video_id)
			DO UPDATE SET
				source = EXCLUDED.source,
				content = EXCLUDED.content,
				fetched_at = EXCLUDED.fetched_at`

		_, err := r.db.conn.ExecContext(ctx, query, videoID, source, content, fetchedAt)
		return err
	}

	query := `
		INSERT OR REPLACE INTO transcripts (video_id, source, content, fetched_at)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.conn.ExecContext(ctx, query, videoID, source, content, fetchedAt)
	return err
}

// Get returns the cached transcript for a video. A miss is an empty string,
// not an error.
func (r *TranscriptRepo) Get(ctx context.Context, videoID string) (string, error) {
	query := `SELECT content FROM transcripts WHERE video_id = $1`

	var content string
	err := r.db.conn.QueryRowContext(ctx, query, videoID).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query transcript: %w", err)
	}
	return content, nil
}

// Delete drops a cached transcript, forcing the next resolve to refetch.
func (r *TranscriptRepo) Delete(ctx context.Context, videoID string) error {
	query := `DELETE FROM transcripts WHERE video_id = $1`
	_, err := r.db.conn.ExecContext(ctx, query, videoID)
	return err
}
