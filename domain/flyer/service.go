package flyer

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
)

// QREncoder produces a raster QR image for a text payload
type QREncoder interface {
	Encode(payload string) ([]byte, error)
}

// Service assembles flyer assets for a listing URL: it extracts a
// representative image from the page, inlines it as a data blob, and encodes
// the original URL as a QR code.
type Service struct {
	client  *http.Client
	encoder QREncoder
}

// NewService creates a new flyer service. A nil client falls back to
// http.DefaultClient.
func NewService(client *http.Client, encoder QREncoder) *Service {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating flyer service", logger.LoggerInfo{
		ContextFunction: constant.CtxFlyer,
		Data: map[string]interface{}{
			constant.DataService: "flyer",
		},
	})

	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		client:  client,
		encoder: encoder,
	}
}

// GenerateFlyer produces the asset pair for the given listing URL
func (s *Service) GenerateFlyer(ctx context.Context, pageURL string) (Assets, error) {
	if pageURL == "" {
		logger.CtxWarn(ctx, "Listing URL cannot be empty", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateFlyer,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEmptyURL,
				Message: constant.ErrNoURLProvided,
				Type:    constant.ErrTypeValidation,
			},
		})
		return Assets{}, ErrEmptyURL
	}

	imageURL, err := s.ExtractMainImage(ctx, pageURL)
	if err != nil {
		return Assets{}, err
	}

	imageBlob, err := s.InlineImage(ctx, imageURL)
	if err != nil {
		return Assets{}, errors.Join(errors.New("inline image"), err)
	}

	qrPNG, err := s.encoder.Encode(pageURL)
	if err != nil {
		logger.CtxError(ctx, "Failed to encode QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateFlyer,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeQREncode,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataURL: pageURL,
			},
		})
		return Assets{}, err
	}

	assets := Assets{
		Image: imageBlob,
		QR:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
	}

	logger.CtxInfo(ctx, constant.MsgFlyerGenerated, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateFlyer,
		Data: map[string]interface{}{
			constant.DataURL:      pageURL,
			constant.DataImageURL: imageURL,
		},
	})

	return assets, nil
}
