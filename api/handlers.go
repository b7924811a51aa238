package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/domain/share"
	appLogger "github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
)

// FlyerService produces flyer assets for a listing URL
type FlyerService interface {
	GenerateFlyer(ctx context.Context, pageURL string) (flyer.Assets, error)
}

// ShareStore persists and retrieves shared flyer assets
type ShareStore interface {
	Put(ctx context.Context, assets flyer.Assets) (string, error)
	Get(ctx context.Context, id string) (flyer.Assets, error)
}

// Composer renders the server-side flyer PDF
type Composer interface {
	Compose(assets flyer.Assets, logoPNG, bgShapePNG []byte) ([]byte, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	flyers   FlyerService
	shares   ShareStore
	composer Composer
	assetDir string
}

// CreateFlyerRequest is the request object for the flyer endpoint
type CreateFlyerRequest struct {
	URL string `json:"url"`
}

// AssetsRequest carries a flyer asset pair; used by the generate-pdf and
// share endpoints
type AssetsRequest struct {
	Image string `json:"image"`
	QR    string `json:"qr"`
}

// ShareResponse is the response object for a created share link
type ShareResponse struct {
	Success bool   `json:"success"`
	ShareID string `json:"shareId"`
	URL     string `json:"url"`
}

// ShareDataResponse wraps retrieved share assets
type ShareDataResponse struct {
	Success bool         `json:"success"`
	Data    flyer.Assets `json:"data"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(flyers FlyerService, shares ShareStore, composer Composer, assetDir string) *Handler {
	return &Handler{
		flyers:   flyers,
		shares:   shares,
		composer: composer,
		assetDir: assetDir,
	}
}

// CreateFlyer handles flyer asset generation for a listing URL
func (h *Handler) CreateFlyer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingFlyerRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateFlyer,
	})

	var req CreateFlyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxWarn(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateFlyer,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, constant.ErrNoURLProvided, http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		WriteJSONError(w, constant.ErrNoURLProvided, http.StatusBadRequest)
		return
	}

	assets, err := h.flyers.GenerateFlyer(ctx, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, flyer.ErrEmptyURL):
			WriteJSONError(w, constant.ErrNoURLProvided, http.StatusBadRequest)
		case errors.Is(err, flyer.ErrNoImage):
			appLogger.CtxInfo(ctx, "No image extractable", appLogger.LoggerInfo{
				ContextFunction: constant.CtxCreateFlyer,
				Data: map[string]interface{}{
					constant.DataURL: req.URL,
				},
			})
			WriteJSONError(w, constant.ErrNoImageFound, http.StatusUnprocessableEntity)
		default:
			appLogger.CtxError(ctx, "Error generating flyer", appLogger.LoggerInfo{
				ContextFunction: constant.CtxCreateFlyer,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAPIServiceError,
					Message: err.Error(),
					Type:    constant.ErrTypeAPI,
				},
				Data: map[string]interface{}{
					constant.DataURL: req.URL,
				},
			})
			WriteJSONError(w, constant.ErrServerError, http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, assets, http.StatusOK)
}

// GeneratePDF handles server-side PDF rendering of a flyer asset pair. The
// rendered document is returned directly as a binary attachment.
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingPDFRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGeneratePDF,
	})

	var req AssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, constant.ErrMissingAssets, http.StatusBadRequest)
		return
	}
	if req.Image == "" || req.QR == "" {
		WriteJSONError(w, constant.ErrMissingAssets, http.StatusBadRequest)
		return
	}

	logoPNG, err := os.ReadFile(filepath.Join(h.assetDir, "logo.png"))
	if err == nil {
		var bgShapePNG []byte
		if bgShapePNG, err = os.ReadFile(filepath.Join(h.assetDir, "bg-shape.png")); err == nil {
			h.renderPDF(w, r, flyer.Assets{Image: req.Image, QR: req.QR}, logoPNG, bgShapePNG)
			return
		}
	}

	appLogger.CtxError(ctx, "Failed to read branding assets", appLogger.LoggerInfo{
		ContextFunction: constant.CtxGeneratePDF,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodePDFAssets,
			Message: err.Error(),
			Type:    constant.ErrTypeRender,
		},
		Data: map[string]interface{}{
			constant.DataAssetDir: h.assetDir,
		},
	})
	WriteJSONError(w, constant.ErrAssetFilesMissing, http.StatusInternalServerError)
}

// renderPDF runs the compositor and writes the attachment response
func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request, assets flyer.Assets, logoPNG, bgShapePNG []byte) {
	ctx := r.Context()

	doc, err := h.composer.Compose(assets, logoPNG, bgShapePNG)
	if err != nil {
		appLogger.CtxError(ctx, "Error rendering PDF", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGeneratePDF,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodePDFRender,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
		})
		WriteJSONError(w, constant.ErrGeneratePDFFailed, http.StatusInternalServerError)
		return
	}

	appLogger.CtxInfo(ctx, constant.MsgPDFGenerated, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGeneratePDF,
		Data: map[string]interface{}{
			constant.DataBytes: len(doc),
		},
	})

	w.Header().Set("Content-Type", constant.PDFContentType)
	w.Header().Set("Content-Disposition", constant.PDFDisposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// CreateShare stores a flyer asset pair behind a fresh share id
func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingShareRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateShare,
	})

	var req AssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, constant.ErrMissingAssets, http.StatusBadRequest)
		return
	}
	if req.Image == "" || req.QR == "" {
		WriteJSONError(w, constant.ErrMissingAssets, http.StatusBadRequest)
		return
	}

	shareID, err := h.shares.Put(ctx, flyer.Assets{Image: req.Image, QR: req.QR})
	if err != nil {
		appLogger.CtxError(ctx, "Error storing share data", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateShare,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, constant.ErrCreateShareFailed, http.StatusInternalServerError)
		return
	}

	WriteJSON(w, ShareResponse{
		Success: true,
		ShareID: shareID,
		URL:     "/share/" + shareID,
	}, http.StatusOK)
}

// RetrieveShare returns the stored assets for a share id
func (h *Handler) RetrieveShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shareID := r.URL.Query().Get("id")

	appLogger.CtxDebug(ctx, "Processing share retrieval request", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRetrieveShare,
		Data: map[string]interface{}{
			constant.DataShareID: shareID,
		},
	})

	if shareID == "" {
		WriteJSONError(w, constant.ErrMissingShareID, http.StatusBadRequest)
		return
	}

	assets, err := h.shares.Get(ctx, shareID)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			appLogger.CtxInfo(ctx, "Share record not found", appLogger.LoggerInfo{
				ContextFunction: constant.CtxRetrieveShare,
				Data: map[string]interface{}{
					constant.DataShareID: shareID,
				},
			})
			WriteJSONError(w, constant.ErrShareNotFound, http.StatusNotFound)
			return
		}

		appLogger.CtxError(ctx, "Error retrieving share data", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRetrieveShare,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataShareID: shareID,
			},
		})
		WriteJSONError(w, constant.ErrGetShareFailed, http.StatusInternalServerError)
		return
	}

	WriteJSON(w, ShareDataResponse{
		Success: true,
		Data:    assets,
	}, http.StatusOK)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
