package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/domain/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testAssets = flyer.Assets{
	Image: "data:image/jpeg;base64,aW1hZ2U=",
	QR:    "data:image/png;base64,cXI=",
}

// Mock flyer service for testing
type MockFlyerService struct {
	mock.Mock
}

func (m *MockFlyerService) GenerateFlyer(ctx context.Context, pageURL string) (flyer.Assets, error) {
	args := m.Called(ctx, pageURL)
	return args.Get(0).(flyer.Assets), args.Error(1)
}

// Mock share store for testing
type MockShareStore struct {
	mock.Mock
}

func (m *MockShareStore) Put(ctx context.Context, assets flyer.Assets) (string, error) {
	args := m.Called(ctx, assets)
	return args.String(0), args.Error(1)
}

func (m *MockShareStore) Get(ctx context.Context, id string) (flyer.Assets, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(flyer.Assets), args.Error(1)
}

// Mock compositor for testing
type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Compose(assets flyer.Assets, logoPNG, bgShapePNG []byte) ([]byte, error) {
	args := m.Called(assets, logoPNG, bgShapePNG)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// assetDir creates a temp dir holding the two branding PNGs
func assetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"logo.png", "bg-shape.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png-bytes"), 0o644); err != nil {
			t.Fatalf("write asset: %v", err)
		}
	}
	return dir
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestCreateFlyer_Success(t *testing.T) {
	flyers := new(MockFlyerService)
	flyers.On("GenerateFlyer", mock.Anything, "https://example.com/listing").Return(testAssets, nil)
	handler := NewHandler(flyers, nil, nil, "")

	w := postJSON(t, handler.CreateFlyer, map[string]string{"url": "https://example.com/listing"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp flyer.Assets
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testAssets, resp)
	flyers.AssertExpectations(t)
}

func TestCreateFlyer_MissingURL(t *testing.T) {
	handler := NewHandler(new(MockFlyerService), nil, nil, "")

	w := postJSON(t, handler.CreateFlyer, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, constant.ErrNoURLProvided, resp.Error)
}

func TestCreateFlyer_NoImageExtractable(t *testing.T) {
	flyers := new(MockFlyerService)
	flyers.On("GenerateFlyer", mock.Anything, mock.Anything).Return(flyer.Assets{}, flyer.ErrNoImage)
	handler := NewHandler(flyers, nil, nil, "")

	w := postJSON(t, handler.CreateFlyer, map[string]string{"url": "https://example.com/empty"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateFlyer_UpstreamFailure(t *testing.T) {
	flyers := new(MockFlyerService)
	flyers.On("GenerateFlyer", mock.Anything, mock.Anything).Return(flyer.Assets{}, errors.New("image host down"))
	handler := NewHandler(flyers, nil, nil, "")

	w := postJSON(t, handler.CreateFlyer, map[string]string{"url": "https://example.com/listing"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, constant.ErrServerError, resp.Error)
}

func TestGeneratePDF_Success(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Compose", testAssets, []byte("png-bytes"), []byte("png-bytes")).Return([]byte("%PDF-1.3 fake"), nil)
	handler := NewHandler(nil, nil, composer, assetDir(t))

	w := postJSON(t, handler.GeneratePDF, testAssets)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.PDFContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, constant.PDFDisposition, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 fake", w.Body.String())
	composer.AssertExpectations(t)
}

func TestGeneratePDF_MissingAssets(t *testing.T) {
	handler := NewHandler(nil, nil, new(MockComposer), assetDir(t))

	w := postJSON(t, handler.GeneratePDF, map[string]string{"image": "data:..."})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePDF_MissingBrandingAssets(t *testing.T) {
	handler := NewHandler(nil, nil, new(MockComposer), t.TempDir())

	w := postJSON(t, handler.GeneratePDF, testAssets)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, constant.ErrAssetFilesMissing, resp.Error)
}

func TestGeneratePDF_RenderFailure(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Compose", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("bad blob"))
	handler := NewHandler(nil, nil, composer, assetDir(t))

	w := postJSON(t, handler.GeneratePDF, testAssets)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateShare_Success(t *testing.T) {
	shares := new(MockShareStore)
	shares.On("Put", mock.Anything, testAssets).Return("3f0e9c1a-5b7d-4e2f-8a9b-0c1d2e3f4a5b", nil)
	handler := NewHandler(nil, shares, nil, "")

	w := postJSON(t, handler.CreateShare, testAssets)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ShareResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.ShareID, 36)
	assert.Equal(t, "/share/"+resp.ShareID, resp.URL)
	shares.AssertExpectations(t)
}

func TestCreateShare_MissingAssets(t *testing.T) {
	handler := NewHandler(nil, new(MockShareStore), nil, "")

	w := postJSON(t, handler.CreateShare, map[string]string{"qr": "data:..."})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShare_StorageFailure(t *testing.T) {
	shares := new(MockShareStore)
	shares.On("Put", mock.Anything, mock.Anything).Return("", errors.New("both tiers down"))
	handler := NewHandler(nil, shares, nil, "")

	w := postJSON(t, handler.CreateShare, testAssets)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRetrieveShare_Success(t *testing.T) {
	shares := new(MockShareStore)
	shares.On("Get", mock.Anything, "some-id").Return(testAssets, nil)
	handler := NewHandler(nil, shares, nil, "")

	req := httptest.NewRequest("GET", "/api/share?id=some-id", nil)
	w := httptest.NewRecorder()
	handler.RetrieveShare(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ShareDataResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testAssets, resp.Data)
}

func TestRetrieveShare_MissingID(t *testing.T) {
	handler := NewHandler(nil, new(MockShareStore), nil, "")

	req := httptest.NewRequest("GET", "/api/share", nil)
	w := httptest.NewRecorder()
	handler.RetrieveShare(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetrieveShare_NotFound(t *testing.T) {
	shares := new(MockShareStore)
	shares.On("Get", mock.Anything, "gone-id").Return(flyer.Assets{}, share.ErrNotFound)
	handler := NewHandler(nil, shares, nil, "")

	req := httptest.NewRequest("GET", "/api/share?id=gone-id", nil)
	w := httptest.NewRecorder()
	handler.RetrieveShare(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, constant.ErrShareNotFound, resp.Error)
}
