package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/jung-kurt/gofpdf"
)

// ErrMissingAssets is returned when either flyer payload is absent; the
// compositor never emits a partial page.
var ErrMissingAssets = errors.New(constant.ErrMissingAssets)

// Fixed flyer geometry in points on an A4 page (595.28 x 841.89)
const (
	pageWidth = 595.28

	propertyImageX = 50.0
	propertyImageY = 50.0
	propertyImageW = 495.0
	propertyImageH = 331.0

	leftColumnX = 50.0
	leftColumnY = 431.0
	leftColumnW = 259.0

	headlineSize  = 48.0
	headlineLineH = 49.92 // 1.04 line height

	subtextSize   = 12.0
	subtextLineH  = 16.0 // 1.33 line height
	subtextTopGap = 18.0

	logoW      = 78.0
	logoH      = 24.0
	logoTopGap = 47.0

	rightSectionX = 405.195
	rightSectionY = 434.025
	rightSectionW = 142.0
	rightSectionH = 322.0

	qrCardOffsetX = 26.0
	qrCardOffsetY = 118.0
	qrCardW       = 89.7
	qrCardRadius  = 3.4
	qrCardPad     = 6.8
	qrSize        = 74.0

	captionCenterX = 70.8
	captionOffsetY = 238.0
	captionW       = 105.8
	captionSize    = 18.0
	captionLineH   = 21.0
)

// Fixed flyer copy; none of it derives from the target page
const (
	headlineText    = "Love this place?"
	subheadlineText = "Secure the best price"
	subtextLead     = "Booking sites charge commission, we don't. Scan the QR Code to book next year's stay on our official website and "
	subtextBold     = "save up to 15%."
	captionText     = "Scan for the best rate"
)

// Compositor renders the fixed-layout property flyer as a single-page A4
// PDF. Rendering is a pure function of the supplied images: no randomness
// and no I/O, so identical inputs always produce the same visual layout.
type Compositor struct{}

// NewCompositor creates a new flyer compositor
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Compose renders the flyer. assets carries the two data blobs; logoPNG and
// bgShapePNG are raw PNG bytes for the static branding images.
func (c *Compositor) Compose(assets flyer.Assets, logoPNG, bgShapePNG []byte) ([]byte, error) {
	if !assets.Complete() {
		return nil, ErrMissingAssets
	}
	if len(logoPNG) == 0 || len(bgShapePNG) == 0 {
		return nil, errors.New(constant.ErrAssetFilesMissing)
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	if err := registerBlob(doc, "property", assets.Image); err != nil {
		return nil, err
	}
	if err := registerBlob(doc, "qr", assets.QR); err != nil {
		return nil, err
	}
	pngOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("logo", pngOpts, bytes.NewReader(logoPNG))
	doc.RegisterImageOptionsReader("bg-shape", pngOpts, bytes.NewReader(bgShapePNG))

	// Property image across the top
	doc.ImageOptions("property", propertyImageX, propertyImageY, propertyImageW, propertyImageH, false, gofpdf.ImageOptions{}, 0, "")

	// Left column: two-line headline, paragraph with one bold phrase, logo
	doc.SetLeftMargin(leftColumnX)
	doc.SetRightMargin(pageWidth - leftColumnX - leftColumnW)

	doc.SetXY(leftColumnX, leftColumnY)
	doc.SetFont("Helvetica", "B", headlineSize)
	doc.SetTextColor(0, 128, 157)
	doc.MultiCell(leftColumnW, headlineLineH, headlineText, "", "L", false)

	doc.SetX(leftColumnX)
	doc.SetTextColor(69, 66, 62)
	doc.MultiCell(leftColumnW, headlineLineH, subheadlineText, "", "L", false)

	doc.SetXY(leftColumnX, doc.GetY()+subtextTopGap)
	doc.SetFont("Helvetica", "", subtextSize)
	doc.SetTextColor(0, 0, 0)
	doc.Write(subtextLineH, subtextLead)
	doc.SetFont("Helvetica", "B", subtextSize)
	doc.Write(subtextLineH, subtextBold)

	doc.ImageOptions("logo", leftColumnX, doc.GetY()+subtextLineH+logoTopGap, logoW, logoH, false, pngOpts, 0, "")

	// Right section: decorative shape, QR on a white card, caption
	doc.ImageOptions("bg-shape", rightSectionX, rightSectionY, rightSectionW, rightSectionH, false, pngOpts, 0, "")

	cardH := qrSize + 2*qrCardPad
	doc.SetFillColor(255, 255, 255)
	doc.RoundedRect(rightSectionX+qrCardOffsetX, rightSectionY+qrCardOffsetY, qrCardW, cardH, qrCardRadius, "1234", "F")
	doc.ImageOptions("qr",
		rightSectionX+qrCardOffsetX+(qrCardW-qrSize)/2,
		rightSectionY+qrCardOffsetY+qrCardPad,
		qrSize, qrSize, false, gofpdf.ImageOptions{}, 0, "")

	doc.SetXY(rightSectionX+captionCenterX-captionW/2, rightSectionY+captionOffsetY)
	doc.SetFont("Helvetica", "B", captionSize)
	doc.SetTextColor(255, 255, 255)
	doc.MultiCell(captionW, captionLineH, captionText, "", "C", false)

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// registerBlob decodes a data blob and registers it as a named PDF image
func registerBlob(doc *gofpdf.Fpdf, name, blob string) error {
	raw, mimeType, err := decodeDataBlob(blob)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	imgType := doc.ImageTypeFromMime(mimeType)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}

	opts := gofpdf.ImageOptions{ImageType: imgType}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if err := doc.Error(); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// decodeDataBlob splits a data:<mime>;base64,<payload> blob into raw bytes
// and its declared mime type
func decodeDataBlob(blob string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(blob, "data:")
	if !ok {
		return nil, "", errors.New("not a data blob")
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, "", errors.New("missing base64 payload")
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return raw, mimeType, nil
}
