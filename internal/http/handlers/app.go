package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"productstudio/internal/domain"
	"productstudio/internal/fulfillment"
	"productstudio/internal/imagegen"
	"productstudio/internal/infra"
)

// ProductService is the fulfillment workflow behind the product endpoints.
type ProductService interface {
	Product(ctx context.Context, sku int64) (*domain.Product, error)
	SaveImage(ctx context.Context, req fulfillment.SaveImageRequest) (*domain.Product, error)
	SaveDescription(ctx context.Context, req fulfillment.SaveDescriptionRequest) (*domain.Product, error)
}

// Generator produces images and descriptions.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string, ref *imagegen.Reference) (*imagegen.Image, error)
	GenerateDescription(ctx context.Context, prompt string) (string, error)
}

// AssetStore writes blobs under keys and resolves their public URLs back to
// the stored bytes.
type AssetStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
	ReadURL(ref string) (key string, data []byte, err error)
}

type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Products  ProductService
	Generator Generator
	Assets    AssetStore
	History   domain.GenerationLogRepository
	// Registry backs /metrics; nil leaves the route unmounted.
	Registry *prometheus.Registry
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorResponse{Error: errCode, Message: msg})
}

// fail maps a domain error onto the HTTP error envelope.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	a.error(w, status, code, err.Error())
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusBadRequest, "upload_too_large"
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, "invalid_slot"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrGenerationExhausted):
		return http.StatusInternalServerError, "generation_exhausted"
	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusInternalServerError, "generation_failed"
	case errors.Is(err, domain.ErrWriteFailed):
		return http.StatusInternalServerError, "write_failed"
	case errors.Is(err, domain.ErrPersistFailed):
		return http.StatusInternalServerError, "persist_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
