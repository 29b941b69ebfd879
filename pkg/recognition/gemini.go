// Package recognition suggests a product name and category from a photo.
package recognition

import (
	"EatBefore/domain"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 30 * time.Second

	prompt = "What product is shown in this image? Please provide the name and category (Fruits, Vegetables, Meat, Dairy, Frozen, or Other). Format: Product Name, Category"
)

var (
	ErrUnsupportedImage = errors.New("file is not a supported image")
	ErrEmptyImage       = errors.New("image is empty")
	ErrEmptyResponse    = errors.New("recognition returned no product")
)

type (
	Result struct {
		Name     string
		Category domain.Category
	}

	Recognizer interface {
		Recognize(ctx context.Context, image []byte) (Result, error)
	}

	Config struct {
		Enabled bool
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	geminiRecognizer struct {
		apiKey     string
		model      string
		baseURL    string
		httpClient *http.Client
		logger     zerolog.Logger
	}
)

// NewRecognizer returns nil when recognition is switched off. Switching it on
// without an API key yields a *domain.ConfigurationError and no recognizer;
// callers keep running with manual entry only.
func NewRecognizer(cfg Config, logger zerolog.Logger) (Recognizer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &domain.ConfigurationError{
			Feature: "image recognition",
			Message: "recognition is enabled but no API key is configured",
		}
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &geminiRecognizer{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "gemini-recognizer").Logger(),
	}, nil
}

func (g *geminiRecognizer) Recognize(ctx context.Context, image []byte) (Result, error) {
	result, err := g.recognize(ctx, image)
	if err != nil {
		return Result{}, &domain.EnrichmentError{Err: err}
	}
	return result, nil
}

func (g *geminiRecognizer) recognize(ctx context.Context, image []byte) (Result, error) {
	if len(image) == 0 {
		return Result{}, ErrEmptyImage
	}

	mimeType := mimetype.Detect(image)
	if !strings.HasPrefix(mimeType.String(), "image/") {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType.String())
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": "image/jpeg",
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return Result{}, err
	}

	geminiURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewReader(requestJSON))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, strings.TrimSpace(string(bodyBytes)))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return Result{}, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return Result{}, ErrEmptyResponse
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	g.logger.Debug().
		Str("detected_mime", mimeType.String()).
		Dur("latency", time.Since(start)).
		Str("raw", text).
		Msg("gemini responded")

	return ParseResponse(text)
}

// ParseResponse reads "Product Name, Category". Any other shape is taken as a
// bare name in the Other category.
func ParseResponse(text string) (Result, error) {
	text = strings.TrimSpace(text)

	parts := strings.Split(text, ",")
	if len(parts) == 2 {
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return Result{}, ErrEmptyResponse
		}
		return Result{
			Name:     name,
			Category: domain.NormalizeCategory(parts[1]),
		}, nil
	}

	if text == "" {
		return Result{}, ErrEmptyResponse
	}
	return Result{Name: text, Category: domain.CategoryOther}, nil
}
