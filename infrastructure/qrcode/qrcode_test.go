package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_ProducesPNG(t *testing.T) {
	encoder := NewEncoder()

	data, err := encoder.Encode("https://example.com/listing")

	assert.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, Size, img.Bounds().Dx())
	assert.Equal(t, Size, img.Bounds().Dy())
}

func TestEncode_Deterministic(t *testing.T) {
	encoder := NewEncoder()

	first, err := encoder.Encode("https://example.com/listing")
	assert.NoError(t, err)

	second, err := encoder.Encode("https://example.com/listing")
	assert.NoError(t, err)

	// Same payload must yield bit-identical rasters
	assert.Equal(t, first, second)
}

func TestEncode_DifferentPayloadsDiffer(t *testing.T) {
	encoder := NewEncoder()

	first, err := encoder.Encode("https://example.com/a")
	assert.NoError(t, err)

	second, err := encoder.Encode("https://example.com/b")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
