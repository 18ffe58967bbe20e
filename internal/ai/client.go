package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openRouterAPIURL = "https://openrouter.ai/api/v1/chat/completions"

	DefaultTextModel  = "openai/gpt-4o-mini"
	DefaultImageModel = "google/gemini-2.5-flash-image-preview"
)

var (
	ErrMissingAPIKey = errors.New("provider API key not configured")
	ErrNoImage       = errors.New("provider returned no image")
)

// ProviderError is a non-success answer from the hosted API, kept verbatim so
// callers can surface status and body to the user.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// CompletionClient is the text/multimodal completion surface consumed by the
// analysis services.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ImageClient is the image-generation surface consumed by the thumbnail
// generator.
type ImageClient interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, openRouterAPIURL)
}

// NewClientWithBaseURL points the client at an alternate chat/completions
// endpoint (OpenAI-compatible gateways, tests).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CompletionRequest struct {
	Model       string
	Prompt      string
	Images      []string // data URLs attached as multimodal parts
	Temperature float64
	MaxTokens   int
}

type ImageRequest struct {
	Model           string
	Prompt          string
	ReferenceImages []string // data URLs
}

type GeneratedImage struct {
	Data          []byte
	MimeType      string
	RevisedPrompt string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Modalities  []string      `json:"modalities,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message responseMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// responseMessage covers both response families: content arrives as a plain
// string or as a list of typed parts, and image models may attach an images
// array beside the content instead of inside it.
type responseMessage struct {
	Content json.RawMessage `json:"content"`
	Images  []contentPart   `json:"images"`
}

// Complete sends a completion request and returns the message text. Requests
// with Images attached become multimodal part lists.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    []chatMessage{userMessage(req.Prompt, req.Images)},
	}

	resp, err := c.send(ctx, body)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in provider response")
	}

	text, _ := normalizeMessage(resp.Choices[0].Message)
	return text, nil
}

// GenerateImage requests one image for the prompt and normalizes the two
// response shapes (side-channel images array vs inline data-URL content
// parts) into a single GeneratedImage. The revised prompt stays empty when
// the message carries no text.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body := chatRequest{
		Model:      req.Model,
		Messages:   []chatMessage{userMessage(req.Prompt, req.ReferenceImages)},
		Modalities: []string{"image", "text"},
	}

	resp, err := c.send(ctx, body)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoImage
	}

	text, images := normalizeMessage(resp.Choices[0].Message)
	if len(images) == 0 {
		return nil, ErrNoImage
	}

	data, mimeType, err := decodeDataURL(images[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return &GeneratedImage{
		Data:          data,
		MimeType:      mimeType,
		RevisedPrompt: strings.TrimSpace(text),
	}, nil
}

func (c *Client) send(ctx context.Context, body chatRequest) (*chatResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		status := chatResp.Error.Code
		if status == 0 {
			status = resp.StatusCode
		}
		return nil, &ProviderError{StatusCode: status, Body: chatResp.Error.Message}
	}

	return &chatResp, nil
}

func userMessage(prompt string, images []string) chatMessage {
	parts := []contentPart{{Type: "text", Text: prompt}}
	for _, img := range images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: img},
		})
	}
	return chatMessage{Role: "user", Content: parts}
}

// normalizeMessage flattens a response message into its text and any image
// data URLs, regardless of which shape the model family used.
func normalizeMessage(msg responseMessage) (string, []string) {
	var text string
	var images []string

	for _, img := range msg.Images {
		if img.ImageURL != nil && img.ImageURL.URL != "" {
			images = append(images, img.ImageURL.URL)
		}
	}

	if len(msg.Content) > 0 {
		var plain string
		if err := json.Unmarshal(msg.Content, &plain); err == nil {
			text = plain
		} else {
			var parts []contentPart
			if err := json.Unmarshal(msg.Content, &parts); err == nil {
				var sb strings.Builder
				for _, part := range parts {
					switch {
					case part.Text != "":
						if sb.Len() > 0 {
							sb.WriteByte('\n')
						}
						sb.WriteString(part.Text)
					case part.ImageURL != nil && part.ImageURL.URL != "":
						images = append(images, part.ImageURL.URL)
					}
				}
				text = sb.String()
			}
		}
	}

	return text, images
}

// EncodeImageDataURL wraps raw base64 image data as a data URL. Input that
// already is a data URL passes through unchanged.
func EncodeImageDataURL(b64 string) string {
	if strings.HasPrefix(b64, "data:") {
		return b64
	}
	return "data:image/jpeg;base64," + b64
}

func decodeDataURL(payload string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		// Some models hand back bare base64 with no data URL wrapper.
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("unrecognized image payload")
		}
		return data, "image/png", nil
	}

	meta, b64, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed image data URL")
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	return data, strings.TrimSuffix(meta, ";base64"), nil
}
