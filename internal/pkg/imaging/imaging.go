package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

type Size struct {
	Name   string
	Width  int
	Height int
}

var (
	SizeThumbnail = Size{Name: "thumbnail", Width: 150, Height: 150}
	SizeCard      = Size{Name: "card", Width: 400, Height: 400}
	SizeDetail    = Size{Name: "detail", Width: 1200, Height: 1200}
)

// Processor decodes, downscales and re-encodes uploaded images.
type Processor struct {
	quality int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Process resizes the image to fit within size, preserving aspect ratio,
// and re-encodes it in its original format (jpeg or png).
func (p *Processor) Process(reader io.Reader, size Size) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	resized := downscale(img, size.Width, size.Height)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	return &buf, format, nil
}

// IsImage reports whether the reader holds a decodable jpeg or png.
func IsImage(reader io.Reader) bool {
	_, format, err := image.Decode(reader)
	return err == nil && (format == "jpeg" || format == "png")
}

func downscale(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
