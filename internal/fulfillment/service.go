package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"productstudio/internal/domain"
	"productstudio/internal/metrics"
)

// ImageStore persists product images and returns their public references.
type ImageStore interface {
	StoreImage(ctx context.Context, sku int64, slotName string, data []byte, format string) (string, error)
}

// SaveImageRequest asks to store an image for one production stage of a product.
type SaveImageRequest struct {
	SKU          int64
	ImageType    string
	ImageDataURL string
}

// SaveDescriptionRequest asks to store the description of one production stage.
type SaveDescriptionRequest struct {
	SKU         int64
	DescType    string
	Description string
}

// Service applies save requests to product records and moves complete
// products to Fulfilled.
type Service struct {
	products domain.ProductRepository
	images   ImageStore
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(products domain.ProductRepository, images ImageStore, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		products: products,
		images:   images,
		logger:   logger,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Product returns the record for sku.
func (s *Service) Product(ctx context.Context, sku int64) (*domain.Product, error) {
	if sku <= 0 {
		return nil, fmt.Errorf("%w: sku is required", domain.ErrInvalidInput)
	}
	return s.products.FindBySKU(ctx, sku)
}

// SaveImage stores the decoded image and points the stage image slot at it.
// The slot is resolved before anything is written, so a rejected request
// leaves neither a file nor a slot change behind.
func (s *Service) SaveImage(ctx context.Context, req SaveImageRequest) (*domain.Product, error) {
	stage := strings.TrimSpace(req.ImageType)
	if req.SKU <= 0 || stage == "" || strings.TrimSpace(req.ImageDataURL) == "" {
		return nil, fmt.Errorf("%w: sku, imageType and imageDataUrl are required", domain.ErrInvalidInput)
	}
	img, err := DecodeImageDataURL(req.ImageDataURL)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindBySKU(ctx, req.SKU); err != nil {
		return nil, err
	}
	slot, err := domain.Stage(stage).ImageSlot()
	if err != nil {
		return nil, err
	}

	url, err := s.images.StoreImage(ctx, req.SKU, stage, img.Data, img.Format)
	if err != nil {
		s.logger.Error().Err(err).Int64("sku", req.SKU).Str("slot", string(slot)).Msg("store product image failed")
		return nil, err
	}
	return s.apply(ctx, req.SKU, slot, url)
}

// SaveDescription writes plain description text into the stage description slot.
func (s *Service) SaveDescription(ctx context.Context, req SaveDescriptionRequest) (*domain.Product, error) {
	stage := strings.TrimSpace(req.DescType)
	if req.SKU <= 0 || stage == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: sku, descType and description are required", domain.ErrInvalidInput)
	}
	if _, err := s.products.FindBySKU(ctx, req.SKU); err != nil {
		return nil, err
	}
	slot, err := domain.Stage(stage).DescriptionSlot()
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, req.SKU, slot, req.Description)
}

// Recompute re-evaluates the fulfillment rule against the stored record. Only
// the status edges are written, each as a conditional update, so slot writes
// racing with it are kept. changed reports whether either edge was applied.
func (s *Service) Recompute(ctx context.Context, sku int64) (*domain.Product, bool, error) {
	p, err := s.Product(ctx, sku)
	if err != nil {
		return nil, false, err
	}
	if p.Status == domain.ProductStatusFulfilled {
		return p, false, nil
	}

	changed := false
	if p.Status == "" {
		ok, err := s.products.MarkPending(ctx, sku)
		if err != nil {
			s.logger.Error().Err(err).Int64("sku", sku).Msg("mark pending failed")
			return nil, false, err
		}
		changed = ok
	}
	// Completeness is checked by the store, not against the copy read above.
	ok, err := s.products.MarkFulfilled(ctx, sku, s.now())
	if err != nil {
		s.logger.Error().Err(err).Int64("sku", sku).Msg("mark fulfilled failed")
		return nil, false, err
	}
	if ok {
		changed = true
		s.metrics.Fulfilled()
		s.logger.Info().Int64("sku", sku).Msg("product fulfilled")
	}
	if !changed {
		return p, false, nil
	}
	latest, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, false, err
	}
	return latest, true, nil
}

func (s *Service) apply(ctx context.Context, sku int64, slot domain.Slot, value string) (*domain.Product, error) {
	p, err := s.products.ApplySlot(ctx, sku, slot, value)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Int64("sku", sku).Str("slot", string(slot)).Msg("apply slot failed")
		}
		return nil, err
	}

	now := s.now()
	if !p.RecomputeStatus(now) {
		return p, nil
	}
	ok, err := s.products.MarkFulfilled(ctx, sku, now)
	if err != nil {
		s.logger.Error().Err(err).Int64("sku", sku).Msg("mark fulfilled failed")
		return nil, err
	}
	if !ok {
		// A concurrent save completed the set first.
		return s.products.FindBySKU(ctx, sku)
	}
	s.metrics.Fulfilled()
	s.logger.Info().Int64("sku", sku).Msg("product fulfilled")
	return p, nil
}
