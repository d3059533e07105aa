package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestPredictImageSendsPromptAndReference(t *testing.T) {
	var captured predictRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/imagen-test:predict" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{
				{"mimeType": "image/jpeg"},
				{"bytesBase64Encoded": base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), "mimeType": "image/jpeg"},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	img, err := client.PredictImage(context.Background(), "imagen-test", "a ring", []byte{0x89, 0x50}, "image/png")
	if err != nil {
		t.Fatalf("PredictImage returned error: %v", err)
	}
	if string(img.Data) != "jpeg-bytes" || img.MimeType != "image/jpeg" {
		t.Fatalf("unexpected image: %q %q", img.Data, img.MimeType)
	}
	if len(captured.Instances) != 1 || captured.Instances[0].Prompt != "a ring" {
		t.Fatalf("unexpected instances: %+v", captured.Instances)
	}
	ref := captured.Instances[0].Image
	if ref == nil || ref.BytesBase64Encoded != base64.StdEncoding.EncodeToString([]byte{0x89, 0x50}) {
		t.Fatalf("reference image not forwarded: %+v", ref)
	}
	if captured.Parameters.SampleCount != 1 {
		t.Fatalf("sampleCount = %d", captured.Parameters.SampleCount)
	}
}

func TestPredictImageWithoutPayloadFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[{"raiFilteredReason":"blocked"}]}`))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.PredictImage(context.Background(), "m", "p", nil, ""); !errors.Is(err, ErrNoContent) {
		t.Fatalf("error = %v, want ErrNoContent", err)
	}
}

func TestInvokeSurfacesAPIErrors(t *testing.T) {
	client := NewClient(Options{APIKey: "k", HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       httpBody(`{"error":{"code":429,"message":"quota exhausted"}}`),
			Header:     make(http.Header),
		}, nil
	})}})
	_, err := client.GenerateText(context.Background(), "gemini", "hello")
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") || !strings.Contains(err.Error(), "429") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateTextReturnsFirstTextPart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "},{"text":" A hand-carved wax model. "}]}}]}`))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: ts.URL + "/"})
	text, err := client.GenerateText(context.Background(), "gemini-2.5-flash", "describe")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "A hand-carved wax model." {
		t.Fatalf("text = %q", text)
	}
}

func TestGenerateTextWithoutCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.GenerateText(context.Background(), "m", "p"); !errors.Is(err, ErrNoContent) {
		t.Fatalf("error = %v, want ErrNoContent", err)
	}
}
