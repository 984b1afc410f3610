package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessResizesAndThumbnails(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 100, MaxHeight: 100, ThumbWidth: 40, ThumbHeight: 30, Quality: 80})

	out, err := p.Process(bytes.NewReader(pngBytes(t, 200, 100)))
	require.NoError(t, err)

	assert.Equal(t, "image/png", out.ContentType)
	assert.Equal(t, ".png", out.Extension)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, 40, out.ThumbWidth)
	assert.Equal(t, 30, out.ThumbHeight)
	assert.NotEmpty(t, out.Original)
	assert.NotEmpty(t, out.Thumbnail)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := NewProcessor(DefaultConfig()).Process(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestGeneratePaths(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-8f64-4b5e-9a53-2d1f0c7e9b10")
	orig, thumb := GeneratePaths(id, ".jpg")
	assert.Equal(t, "gallery/6f1c2a4e-8f64-4b5e-9a53-2d1f0c7e9b10.jpg", orig)
	assert.Equal(t, "gallery/6f1c2a4e-8f64-4b5e-9a53-2d1f0c7e9b10_thumb.jpg", thumb)
}
