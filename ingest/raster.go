package ingest

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

const (
	// MaxVisionPages bounds the vision-path payload; judgments past
	// the cap are simply not rasterized.
	MaxVisionPages = 10

	// renderDPI balances OCR quality against request size.
	renderDPI = 150

	// maxPageWidth caps the rendered width; larger pages are scaled
	// down before encoding.
	maxPageWidth = 1280

	jpegQuality = 80
)

// RenderPages rasterizes up to maxPages PDF pages to JPEG, in page
// order. maxPages values outside (0, MaxVisionPages] are clamped.
func RenderPages(data []byte, maxPages int) ([][]byte, error) {
	if maxPages <= 0 || maxPages > MaxVisionPages {
		maxPages = MaxVisionPages
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if total > maxPages {
		total = maxPages
	}

	pages := make([][]byte, 0, total)
	for i := 0; i < total; i++ {
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}

		encoded, err := encodeJPEG(scaleToWidth(img, maxPageWidth))
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		pages = append(pages, encoded)
	}

	return pages, nil
}

// scaleToWidth downscales img so its width does not exceed maxWidth.
// Images already within bounds are returned unchanged.
func scaleToWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return img
	}
	ratio := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
