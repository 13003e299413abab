// Package aibridge talks to the Gemini image generation API.
package aibridge

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/upload"
)

var (
	// ErrEmptyPrompt is returned before any request when a prompt is required.
	ErrEmptyPrompt = errors.New("aibridge: prompt is required")
	// ErrNoImage means the model answered without an image part.
	ErrNoImage  = errors.New("aibridge: no image data returned")
	ErrNoAPIKey = errors.New("aibridge: api key is not configured")
)

// DefaultMockupPrompt is used when the mockup is sent without guidance text.
const DefaultMockupPrompt = "Make it look stylish and modern"

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("aibridge: api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("aibridge: api error %d: %s", e.Status, e.Message)
}

// Image is a generated picture.
type Image struct {
	Data     []byte
	MIMEType string
}

func (i Image) DataURI() string {
	return upload.EncodeDataURI(i.MIMEType, i.Data)
}

type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
	Logger   *zap.Logger
}

type Client struct {
	http  *resty.Client
	model string
	key   string
	log   *zap.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "totestudio/1.0")
	if cfg.APIKey != "" {
		http.SetHeader("x-goog-api-key", cfg.APIKey)
	}
	return &Client{http: http, model: cfg.Model, key: cfg.APIKey, log: cfg.Logger}
}

// FromMockup asks for a photorealistic product shot of the composed mockup.
// An empty prompt falls back to DefaultMockupPrompt.
func (c *Client) FromMockup(ctx context.Context, mockupPNG []byte, prompt string) (Image, error) {
	if len(mockupPNG) == 0 {
		return Image{}, errors.New("aibridge: empty mockup image")
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultMockupPrompt
	}
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MIMEType: "image/png", Data: base64.StdEncoding.EncodeToString(mockupPNG)}},
				{Text: mockupPrompt(prompt)},
			},
		}},
	}
	return c.generate(ctx, req)
}

// FromPrompt generates a square product shot from text alone.
func (c *Client) FromPrompt(ctx context.Context, prompt string) (Image, error) {
	if err := validatePrompt(prompt); err != nil {
		return Image{}, err
	}
	req := generateRequest{
		Contents: []content{{
			Parts: []part{{Text: purePrompt(prompt)}},
		}},
		GenerationConfig: &generationConfig{
			ImageConfig: &imageConfig{AspectRatio: "1:1"},
		},
	}
	return c.generate(ctx, req)
}

func validatePrompt(prompt string) error {
	if err := validation.Validate(strings.TrimSpace(prompt), validation.Required); err != nil {
		return ErrEmptyPrompt
	}
	return nil
}

func (c *Client) generate(ctx context.Context, body generateRequest) (Image, error) {
	if c.key == "" {
		return Image{}, ErrNoAPIKey
	}
	var (
		out    generateResponse
		errOut errorResponse
	)
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&errOut).
		Post("/models/" + c.model + ":generateContent")
	if err != nil {
		return Image{}, fmt.Errorf("aibridge: generate: %w", err)
	}
	c.log.Debug("generate finished",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Code: errOut.Error.Status, Message: errOut.Error.Message}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return Image{}, apiErr
	}
	return out.firstImage()
}

func (r generateResponse) firstImage() (Image, error) {
	if len(r.Candidates) == 0 {
		return Image{}, ErrNoImage
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return Image{}, fmt.Errorf("aibridge: decode image: %w", err)
		}
		mt := p.InlineData.MIMEType
		if mt == "" {
			mt = "image/png"
		}
		return Image{Data: data, MIMEType: mt}, nil
	}
	return Image{}, ErrNoImage
}
