package imagegen

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

const (
	kindImage = "image"
	kindText  = "text"
)

// Options wires a Gateway.
type Options struct {
	Images ImagePredictor
	Text   TextGenerator
	// ImageModels is tried in order until one returns an image.
	ImageModels []string
	TextModel   string
	// AttemptTimeout bounds each upstream call; zero disables the bound.
	AttemptTimeout time.Duration
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
}

// Gateway generates images and product descriptions through the upstream API.
type Gateway struct {
	images      ImagePredictor
	text        TextGenerator
	imageModels []string
	textModel   string
	timeout     time.Duration
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewGateway validates opts and builds a Gateway.
func NewGateway(opts Options) (*Gateway, error) {
	if opts.Images == nil || opts.Text == nil {
		return nil, errors.New("imagegen: image and text capabilities are required")
	}
	var models []string
	for _, m := range opts.ImageModels {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, errors.New("imagegen: at least one image model is required")
	}
	if strings.TrimSpace(opts.TextModel) == "" {
		return nil, errors.New("imagegen: text model is required")
	}
	return &Gateway{
		images:      opts.Images,
		text:        opts.Text,
		imageModels: models,
		textModel:   strings.TrimSpace(opts.TextModel),
		timeout:     opts.AttemptTimeout,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}, nil
}

// ImageModels returns the ordered fallback list.
func (g *Gateway) ImageModels() []string {
	return append([]string(nil), g.imageModels...)
}

// GenerateImage walks the model list in order and returns the first image
// produced. Failed attempts are logged and skipped without delay; only when
// every model failed does it return ErrGenerationExhausted.
func (g *Gateway) GenerateImage(ctx context.Context, prompt string, ref *Reference) (*Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidInput)
	}
	for _, model := range g.imageModels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempt := g.tryImage(ctx, model, prompt, ref)
		if attempt.OK() {
			g.logger.Info().Str("model", model).Int("bytes", len(attempt.Image.Data)).Msg("imagegen: image generated")
			return attempt.Image, nil
		}
		g.logger.Warn().Err(attempt.Err).Str("model", model).Msg("imagegen: model attempt failed")
	}
	return nil, fmt.Errorf("%w (%d models tried)", domain.ErrGenerationExhausted, len(g.imageModels))
}

func (g *Gateway) tryImage(ctx context.Context, model, prompt string, ref *Reference) Attempt {
	ctx, cancel := g.attemptContext(ctx)
	defer cancel()

	var data []byte
	var mime string
	if ref != nil {
		data, mime = ref.Data, ref.MimeType
	}
	start := time.Now()
	out, err := g.images.PredictImage(ctx, model, prompt, data, mime)
	if err == nil && (out == nil || len(out.Data) == 0) {
		err = errors.New("empty image payload")
	}
	if err != nil {
		g.metrics.ObserveAttempt(kindImage, model, metrics.OutcomeFailure, time.Since(start))
		return Attempt{Model: model, Err: err}
	}
	g.metrics.ObserveAttempt(kindImage, model, metrics.OutcomeSuccess, time.Since(start))
	return Attempt{Model: model, Image: &Image{
		Data:   out.Data,
		Format: domain.NormalizeImageFormat(out.MimeType),
		Model:  model,
	}}
}

// GenerateDescription produces product copy for prompt using the single text
// model; there is no fallback.
func (g *Gateway) GenerateDescription(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrInvalidInput)
	}
	ctx, cancel := g.attemptContext(ctx)
	defer cancel()

	start := time.Now()
	text, err := g.text.GenerateText(ctx, g.textModel, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty text")
	}
	if err != nil {
		g.metrics.ObserveAttempt(kindText, g.textModel, metrics.OutcomeFailure, time.Since(start))
		g.logger.Warn().Err(err).Str("model", g.textModel).Msg("imagegen: description generation failed")
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	g.metrics.ObserveAttempt(kindText, g.textModel, metrics.OutcomeSuccess, time.Since(start))
	return strings.TrimSpace(text), nil
}

func (g *Gateway) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}
