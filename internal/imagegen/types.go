package imagegen

import (
	"context"

	"productstudio/internal/providers/genai"
)

// ImagePredictor is the image capability of the upstream API.
type ImagePredictor interface {
	PredictImage(ctx context.Context, model, prompt string, reference []byte, referenceMime string) (*genai.Image, error)
}

// TextGenerator is the text capability of the upstream API.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// Reference is an optional conditioning image supplied by the caller.
type Reference struct {
	Data     []byte
	MimeType string
}

// Image is a generated image and the model that produced it.
type Image struct {
	Data   []byte
	Format string
	Model  string
}

// ContentType returns the MIME type matching the image format.
func (i *Image) ContentType() string {
	return "image/" + i.Format
}

// Attempt is the outcome of calling one model: exactly one of Image and Err is set.
type Attempt struct {
	Model string
	Image *Image
	Err   error
}

// OK reports whether the attempt produced an image.
func (a Attempt) OK() bool {
	return a.Err == nil && a.Image != nil
}
