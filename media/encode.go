package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
)

// JPEGQuality is the quality used for captured frames.
const JPEGQuality = 80

// EncodeJPEG encodes a frame. A nil frame or one with zero dimensions yields
// an empty payload and no error.
func EncodeJPEG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, nil
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Base64 returns the standard base64 text of data, or "" for empty data.
func Base64(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}
