package pdf

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/stretchr/testify/assert"
)

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 128, B: 157, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func solidJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func asBlob(mime string, raw []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func validAssets(t *testing.T) flyer.Assets {
	return flyer.Assets{
		Image: asBlob("image/jpeg", solidJPEG(t, 40, 30)),
		QR:    asBlob("image/png", solidPNG(t, 32, 32)),
	}
}

func TestCompose_ProducesPDF(t *testing.T) {
	compositor := NewCompositor()
	logo := solidPNG(t, 78, 24)
	bgShape := solidPNG(t, 142, 322)

	doc, err := compositor.Compose(validAssets(t), logo, bgShape)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	// Single page
	assert.Contains(t, string(doc), "/Count 1")
}

func TestCompose_MissingImageIsFatal(t *testing.T) {
	compositor := NewCompositor()
	assets := validAssets(t)
	assets.Image = ""

	doc, err := compositor.Compose(assets, solidPNG(t, 10, 10), solidPNG(t, 10, 10))

	assert.ErrorIs(t, err, ErrMissingAssets)
	assert.Nil(t, doc)
}

func TestCompose_MissingQRIsFatal(t *testing.T) {
	compositor := NewCompositor()
	assets := validAssets(t)
	assets.QR = ""

	doc, err := compositor.Compose(assets, solidPNG(t, 10, 10), solidPNG(t, 10, 10))

	assert.ErrorIs(t, err, ErrMissingAssets)
	assert.Nil(t, doc)
}

func TestCompose_MissingBrandingAssetsIsFatal(t *testing.T) {
	compositor := NewCompositor()

	_, err := compositor.Compose(validAssets(t), nil, solidPNG(t, 10, 10))
	assert.Error(t, err)

	_, err = compositor.Compose(validAssets(t), solidPNG(t, 10, 10), nil)
	assert.Error(t, err)
}

func TestCompose_MalformedBlobIsFatal(t *testing.T) {
	compositor := NewCompositor()
	assets := validAssets(t)
	assets.Image = "not-a-data-blob"

	_, err := compositor.Compose(assets, solidPNG(t, 10, 10), solidPNG(t, 10, 10))

	assert.Error(t, err)
}

func TestCompose_SameInputsSameLayout(t *testing.T) {
	compositor := NewCompositor()
	logo := solidPNG(t, 78, 24)
	bgShape := solidPNG(t, 142, 322)
	assets := validAssets(t)

	first, err := compositor.Compose(assets, logo, bgShape)
	assert.NoError(t, err)
	second, err := compositor.Compose(assets, logo, bgShape)
	assert.NoError(t, err)

	// Page content is identical; only document metadata such as the
	// creation timestamp may differ between runs
	assert.Equal(t, len(first), len(second))
}

func TestDecodeDataBlob(t *testing.T) {
	raw, mime, err := decodeDataBlob("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))

	assert.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte{1, 2, 3}, raw)
}

func TestDecodeDataBlob_Rejects(t *testing.T) {
	_, _, err := decodeDataBlob("image/png;base64,AAAA")
	assert.Error(t, err)

	_, _, err = decodeDataBlob("data:image/png,AAAA")
	assert.Error(t, err)

	_, _, err = decodeDataBlob("data:image/png;base64,!!!")
	assert.Error(t, err)
}
