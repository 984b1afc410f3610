package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ProcessedImage contains all variants of a processed image
type ProcessedImage struct {
	Original    []byte
	Thumbnail   []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
	ThumbWidth  int
	ThumbHeight int
}

// Config for image processing
type Config struct {
	MaxWidth    int // Max width for original
	MaxHeight   int // Max height for original
	ThumbWidth  int
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns the gallery processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:    1600,
		MaxHeight:   1600,
		ThumbWidth:  400,
		ThumbHeight: 300,
		Quality:     85,
	}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an image, shrinks it to the configured bounds and creates a
// center-cropped thumbnail. PNG stays PNG, everything else is re-encoded as JPEG.
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &ProcessedImage{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	resized := img
	if result.Width > p.config.MaxWidth || result.Height > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
		result.Width = resized.Bounds().Dx()
		result.Height = resized.Bounds().Dy()
	}

	result.Original, result.ContentType, result.Extension, err = p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original: %w", err)
	}

	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)
	result.ThumbWidth = thumb.Bounds().Dx()
	result.ThumbHeight = thumb.Bounds().Dy()

	result.Thumbnail, _, _, err = p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return result, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, string, string, error) {
	var buf bytes.Buffer

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), "image/png", ".png", nil
	}

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), "image/jpeg", ".jpg", nil
}

// GeneratePaths generates storage keys for a gallery image and its thumbnail
func GeneratePaths(id uuid.UUID, ext string) (original, thumb string) {
	original = fmt.Sprintf("gallery/%s%s", id, ext)
	thumb = fmt.Sprintf("gallery/%s_thumb%s", id, ext)
	return
}
