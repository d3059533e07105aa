package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"productstudio/internal/domain"
	"productstudio/internal/imagegen"
)

const (
	defaultMaxUploadBytes = 10 << 20
	multipartOverhead     = 1 << 20
	multipartMemory       = 8 << 20
)

func (a *App) maxUploadBytes() int64 {
	if a.Config != nil && a.Config.MaxUploadBytes > 0 {
		return a.Config.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func (a *App) uploadTooLarge() error {
	return fmt.Errorf("%w: reference image must be %d MB or smaller", domain.ErrUploadTooLarge, a.maxUploadBytes()>>20)
}

// GenerateImage handles POST /api/generate-image. The response body is the raw
// image.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	limit := a.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			a.fail(w, r, a.uploadTooLarge())
			return
		}
		a.error(w, http.StatusBadRequest, "invalid_input", "expected multipart form with a prompt field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		a.error(w, http.StatusBadRequest, "invalid_input", "prompt is required")
		return
	}
	ref, err := a.readReference(r, limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	img, err := a.Generator.GenerateImage(r.Context(), prompt, ref)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.recordGeneration(r, prompt, img)

	w.Header().Set("Content-Type", img.ContentType())
	w.Header().Set("X-Model-Used", img.Model)
	w.Header().Set("X-Image-Size", strconv.Itoa(len(img.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// readReference returns the optional referenceImage part, or nil when absent.
func (a *App) readReference(r *http.Request, limit int64) (*imagegen.Reference, error) {
	file, header, err := r.FormFile("referenceImage")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable reference image", domain.ErrInvalidInput)
	}
	defer file.Close()

	if header.Size > limit {
		return nil, a.uploadTooLarge()
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: reference image must have an image content type", domain.ErrInvalidInput)
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable reference image", domain.ErrInvalidInput)
	}
	if int64(len(data)) > limit {
		return nil, a.uploadTooLarge()
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: reference image is not a recognized image", domain.ErrInvalidInput)
	}
	return &imagegen.Reference{Data: data, MimeType: kind.MIME.Value}, nil
}

// recordGeneration keeps a copy of the image and appends it to the history.
// Failures are logged; the caller still receives the image.
func (a *App) recordGeneration(r *http.Request, prompt string, img *imagegen.Image) {
	if a.Assets == nil || a.History == nil {
		return
	}
	id := uuid.NewString()
	url, err := a.Assets.Put(r.Context(), fmt.Sprintf("generated/%s.%s", id, img.Format), img.Data)
	if err != nil {
		a.Logger.Error().Err(err).Str("model", img.Model).Msg("store generated image failed")
		return
	}
	entry := &domain.GenerationLog{
		ID:        id,
		Prompt:    prompt,
		ImageURL:  url,
		Model:     img.Model,
		Size:      int64(len(img.Data)),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.History.Append(r.Context(), entry); err != nil {
		a.Logger.Error().Err(err).Str("image_url", url).Msg("append generation log failed")
	}
}

type generateDescriptionRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateDescription handles POST /api/generate-description.
func (a *App) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req generateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "invalid_input", "prompt is required")
		return
	}
	text, err := a.Generator.GenerateDescription(r.Context(), req.Prompt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"description": text})
}
