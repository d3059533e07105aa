package fulfillment

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/h2non/filetype"

	"productstudio/internal/domain"
)

const dataURLImagePrefix = "data:image/"

// DecodedImage is the binary content of an image data URL.
type DecodedImage struct {
	Data   []byte
	Format string
}

// DecodeImageDataURL parses "data:image/<fmt>;base64,<payload>". The payload
// must decode to a png, jpeg, gif or webp image; the sniffed type wins over
// the declared one when they disagree.
func DecodeImageDataURL(raw string) (*DecodedImage, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToLower(raw), dataURLImagePrefix) {
		return nil, fmt.Errorf("%w: image payload must be a data:image/ URL", domain.ErrInvalidInput)
	}
	header, payload, ok := strings.Cut(raw, ",")
	if !ok || payload == "" {
		return nil, fmt.Errorf("%w: image data URL has no payload", domain.ErrInvalidInput)
	}
	meta := strings.ToLower(header[len(dataURLImagePrefix):])
	declared, params, _ := strings.Cut(meta, ";")
	if declared == "" || !strings.Contains(params, "base64") {
		return nil, fmt.Errorf("%w: image data URL must be base64 encoded", domain.ErrInvalidInput)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return nil, fmt.Errorf("%w: image data URL payload is not valid base64", domain.ErrInvalidInput)
		}
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: image data URL payload is not an image", domain.ErrInvalidInput)
	}
	format, ok := domain.ImageFormat(kind.Extension)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %s", domain.ErrInvalidInput, kind.MIME.Value)
	}
	return &DecodedImage{Data: data, Format: format}, nil
}
