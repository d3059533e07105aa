package domain

import "strings"

// ImageFormat resolves a MIME type ("image/jpeg") or file extension ("jpg")
// to one of the stored image formats: png, jpeg, gif or webp. ok is false for
// anything else.
func ImageFormat(s string) (format string, ok bool) {
	f := strings.ToLower(strings.TrimSpace(s))
	f, _, _ = strings.Cut(f, ";")
	f = strings.TrimPrefix(strings.TrimSpace(f), "image/")
	switch f {
	case "jpg", "jpeg", "pjpeg":
		return "jpeg", true
	case "png", "gif", "webp":
		return f, true
	}
	return "", false
}

// NormalizeImageFormat is ImageFormat falling back to png.
func NormalizeImageFormat(s string) string {
	if f, ok := ImageFormat(s); ok {
		return f
	}
	return "png"
}
