package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPickMIME(t *testing.T) {
	b := tinyPNG(t)
	assert.Equal(t, "image/png", PickMIME("image/jpeg", b))
	assert.Equal(t, "image/jpeg", PickMIME("image/jpeg", []byte{0xFF, 0xD8, 0xFF}))
	assert.Equal(t, "image/bmp", PickMIME(" IMAGE/BMP ", nil))
	assert.Equal(t, "application/octet-stream", PickMIME("", nil))
	assert.True(t, IsImageMIME("Image/PNG"))
	assert.False(t, IsImageMIME("application/pdf"))
}

func TestDecodable(t *testing.T) {
	assert.True(t, Decodable(tinyPNG(t)))
	assert.False(t, Decodable([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}))
}

func TestMakeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", MakeDataURL("image/png", []byte{1, 2}))
	assert.Len(t, SHA256Hex([]byte("x")), 64)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3, "..."))
	assert.Equal(t, "ab...", Truncate("abcd", 2, "..."))
	assert.Equal(t, "తె...", Truncate("తెలుగు", 2, "..."))
}
