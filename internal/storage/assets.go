package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"productstudio/internal/domain"
)

// AssetStore writes images into a FileStore and resolves them to public URLs.
type AssetStore struct {
	files   *FileStore
	baseURL string
}

// NewAssetStore builds an AssetStore whose references are rooted at baseURL,
// e.g. "https://example.com/public".
func NewAssetStore(files *FileStore, baseURL string) *AssetStore {
	return &AssetStore{files: files, baseURL: strings.TrimRight(baseURL, "/")}
}

// ProductImageKey is the storage key for a product image. It depends only on
// the SKU, the slot name and the format, so saving the same slot again
// replaces the previous file.
func ProductImageKey(sku int64, slotName, format string) string {
	return fmt.Sprintf("products/%d/%s.%s", sku, slugify(slotName), domain.NormalizeImageFormat(format))
}

// StoreImage persists a product image and returns its public URL.
func (s *AssetStore) StoreImage(ctx context.Context, sku int64, slotName string, data []byte, format string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image payload", domain.ErrInvalidInput)
	}
	return s.Put(ctx, ProductImageKey(sku, slotName, format), data)
}

// Put writes data at key and returns the public URL of the stored file.
func (s *AssetStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	cleanKey, err := s.files.Write(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return s.URL(cleanKey), nil
}

// URL resolves a storage key to its externally reachable address.
func (s *AssetStore) URL(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "image"
	}
	return out
}

// ReadURL loads the file behind a reference previously returned by this
// store. References outside the store's base URL report ErrNotFound.
func (s *AssetStore) ReadURL(ref string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(ref, s.baseURL+"/")
	if !ok || rest == "" {
		return "", nil, fmt.Errorf("%w: %s is not a stored asset", domain.ErrNotFound, ref)
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s is not a stored asset", domain.ErrNotFound, ref)
	}
	data, err := s.files.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, key)
		}
		return "", nil, err
	}
	return key, data, nil
}
