package models

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

const (
	ThumbnailWidth  = 1280
	ThumbnailHeight = 720
)

type GeneratedThumbnail struct {
	ID            string           `json:"id"`
	ImageData     []byte           `json:"-"`
	MimeType      string           `json:"-"`
	Concept       ThumbnailConcept `json:"concept"`
	TextOverlay   string           `json:"textOverlay"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	RevisedPrompt string           `json:"revisedPrompt,omitempty"`
}

func NewGeneratedThumbnail(concept ThumbnailConcept, data []byte, mimeType, revisedPrompt string) *GeneratedThumbnail {
	return &GeneratedThumbnail{
		ID:            uuid.New().String(),
		ImageData:     data,
		MimeType:      mimeType,
		Concept:       concept,
		TextOverlay:   concept.TextOverlay,
		Width:         ThumbnailWidth,
		Height:        ThumbnailHeight,
		RevisedPrompt: revisedPrompt,
	}
}

// DataURL encodes the image bytes for JSON transport to the front end.
func (t *GeneratedThumbnail) DataURL() string {
	mimeType := t.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(t.ImageData))
}
