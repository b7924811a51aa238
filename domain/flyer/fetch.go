package flyer

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
)

// InlineImage downloads the image at the given URL and re-encodes it as an
// embeddable data blob carrying the upstream's declared content type. A
// missing content type defaults to image/jpeg; the bytes themselves are
// trusted as-is. Any network failure is fatal for the enclosing request.
func (s *Service) InlineImage(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", defaultUA)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.CtxError(ctx, "Failed to fetch image", logger.LoggerInfo{
			ContextFunction: constant.CtxInlineImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInlineFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataImageURL: imageURL,
			},
		})
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.CtxError(ctx, "Failed to read image body", logger.LoggerInfo{
			ContextFunction: constant.CtxInlineImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInlineFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataImageURL: imageURL,
			},
		})
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = constant.DefaultImageMimeType
	}

	logger.CtxDebug(ctx, "Image inlined", logger.LoggerInfo{
		ContextFunction: constant.CtxInlineImage,
		Data: map[string]interface{}{
			constant.DataImageURL:    imageURL,
			constant.DataContentType: contentType,
			constant.DataBytes:       len(raw),
		},
	})

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
