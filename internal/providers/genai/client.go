package genai

import (
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
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNoContent is returned when a call succeeds but carries nothing usable.
var ErrNoContent = errors.New("genai: response carried no content")

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client is a thin wrapper over the Gemini REST API covering the two calls the
// service needs: Imagen predictions and text generateContent.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. Callers may provide a nil HTTP client;
// a reusable one with a conservative timeout will be created. Per-call
// deadlines come from the context.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Image is a decoded image returned by a prediction.
type Image struct {
	Data     []byte
	MimeType string
}

type predictInstance struct {
	Prompt string        `json:"prompt"`
	Image  *predictImage `json:"image,omitempty"`
}

type predictImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType,omitempty"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

type contentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type contentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// PredictImage asks an image model for a single image. The reference image,
// when present, is sent base64 encoded alongside the prompt. The call fails
// unless the response embeds at least one base64 image payload.
func (c *Client) PredictImage(ctx context.Context, model, prompt string, reference []byte, referenceMime string) (*Image, error) {
	instance := predictInstance{Prompt: prompt}
	if len(reference) > 0 {
		instance.Image = &predictImage{
			BytesBase64Encoded: base64.StdEncoding.EncodeToString(reference),
			MimeType:           referenceMime,
		}
	}
	payload := predictRequest{
		Instances:  []predictInstance{instance},
		Parameters: predictParameters{SampleCount: 1},
	}

	var out predictResponse
	if err := c.invoke(ctx, model, "predict", payload, &out); err != nil {
		return nil, err
	}
	for _, prediction := range out.Predictions {
		if prediction.BytesBase64Encoded == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(prediction.BytesBase64Encoded)
		if err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		return &Image{Data: data, MimeType: prediction.MimeType}, nil
	}
	return nil, ErrNoContent
}

// GenerateText runs generateContent with a single user prompt and returns the
// first non-blank text part.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	payload := contentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	}
	var out contentResponse
	if err := c.invoke(ctx, model, "generateContent", payload, &out); err != nil {
		return "", err
	}
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", ErrNoContent
}

func (c *Client) invoke(ctx context.Context, model, method string, payload any, out any) error {
	endpoint := fmt.Sprintf("%s/models/%s:%s", c.baseURL, url.PathEscape(model), method)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		if msg := strings.TrimSpace(string(data)); msg != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}
