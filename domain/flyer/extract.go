package flyer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
)

const defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxHTMLBytes caps how much of the target page is read
const maxHTMLBytes = 10 * 1024 * 1024

// ExtractMainImage fetches the target page and selects one representative
// image URL. Priority order, first match wins:
//  1. og:image meta tag
//  2. twitter:image meta tag
//  3. the <img> with the largest explicit width*height, document order
//     breaking ties
//
// Every failure mode collapses into ErrNoImage.
func (s *Service) ExtractMainImage(ctx context.Context, pageURL string) (string, error) {
	logger.CtxDebug(ctx, "Extracting main image", logger.LoggerInfo{
		ContextFunction: constant.CtxExtractMainImage,
		Data: map[string]interface{}{
			constant.DataURL: pageURL,
		},
	})

	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to fetch target page", logger.LoggerInfo{
			ContextFunction: constant.CtxExtractMainImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeExtractFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataURL: pageURL,
			},
		})
		return "", ErrNoImage
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxHTMLBytes))
	if err != nil {
		logger.CtxWarn(ctx, "Failed to parse target page", logger.LoggerInfo{
			ContextFunction: constant.CtxExtractMainImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeExtractFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataURL: pageURL,
			},
		})
		return "", ErrNoImage
	}

	if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && v != "" {
		return v, nil
	}

	if v, ok := doc.Find(`meta[name="twitter:image"]`).Attr("content"); ok && v != "" {
		return v, nil
	}

	// Largest <img> by declared dimensions. Tags without parseable
	// width/height attributes score zero and are never selected.
	var largestSrc string
	var largestArea int
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		w, _ := strconv.Atoi(sel.AttrOr("width", "0"))
		h, _ := strconv.Atoi(sel.AttrOr("height", "0"))
		area := w * h
		if area > largestArea {
			src, ok := sel.Attr("src")
			if !ok || src == "" {
				return
			}
			largestArea = area
			largestSrc = src
		}
	})
	if largestSrc != "" {
		resolved := resolveURL(pageURL, largestSrc)
		logger.CtxDebug(ctx, "Selected largest inline image", logger.LoggerInfo{
			ContextFunction: constant.CtxExtractMainImage,
			Data: map[string]interface{}{
				constant.DataImageURL: resolved,
			},
		})
		return resolved, nil
	}

	logger.CtxInfo(ctx, "No extractable image on page", logger.LoggerInfo{
		ContextFunction: constant.CtxExtractMainImage,
		Data: map[string]interface{}{
			constant.DataURL: pageURL,
		},
	})
	return "", ErrNoImage
}

// fetch retrieves the URL with browser-like headers. Callers own the body.
func (s *Service) fetch(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, &url.Error{Op: "Get", URL: target, Err: errStatus(resp.StatusCode)}
	}
	return resp.Body, nil
}

type errStatus int

func (e errStatus) Error() string {
	return "unexpected status " + strconv.Itoa(int(e))
}

// resolveURL makes a possibly-relative image source absolute against the page URL
func resolveURL(pageURL, src string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
