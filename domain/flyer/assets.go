package flyer

import (
	"errors"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
)

// Assets holds the two rendered flyer payloads as self-describing data blobs
// (data:<mime>;base64,<payload>). Both are required; there is no partial flyer.
type Assets struct {
	Image string `json:"image"`
	QR    string `json:"qr"`
}

// Complete reports whether both payloads are present
func (a Assets) Complete() bool {
	return a.Image != "" && a.QR != ""
}

// Domain errors
var (
	ErrEmptyURL = errors.New(constant.ErrNoURLProvided)

	// ErrNoImage covers every extraction failure: unreachable page,
	// non-HTML response, parse failure, or simply no candidate image.
	// Callers cannot and should not distinguish between them.
	ErrNoImage = errors.New(constant.ErrNoImageFound)
)
