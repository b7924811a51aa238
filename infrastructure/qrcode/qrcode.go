package qrcode

import (
	"github.com/skip2/go-qrcode"
)

// Size is the fixed pixel width of every generated QR code
const Size = 256

// Encoder generates deterministic QR code rasters: no quiet-zone border,
// medium recovery level, fixed pixel width. The same payload always yields
// bit-identical PNG bytes.
type Encoder struct{}

// NewEncoder creates a new QR code encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode renders the payload text as a border-less PNG
func (e *Encoder) Encode(payload string) ([]byte, error) {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qr.DisableBorder = true

	return qr.PNG(Size)
}
