package util

import (
	"Sabzee/internal/pkg/consts"
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// GetSafeContentType sniffs the content type from the payload itself and
// rewinds the reader.
func GetSafeContentType(r io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// NormalizeImage decodes an uploaded image, downscales it when a side
// exceeds MaxImageDimension and re-encodes it as JPEG.
func NormalizeImage(r io.Reader) (io.Reader, int64, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > consts.MaxImageDimension || bounds.Dy() > consts.MaxImageDimension {
		img = imaging.Fit(img, consts.MaxImageDimension, consts.MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpeg.DefaultQuality)); err != nil {
		return nil, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	return &buf, int64(buf.Len()), nil
}
