package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contentapi/internal/model"
	"contentapi/internal/service"
	serviceMocks "contentapi/internal/service/mocks"
	"contentapi/internal/storage"
	storeMocks "contentapi/internal/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("List", mock.Anything, "content.json").Return([]storage.ObjectInfo{}, nil)

		app := fiber.New()
		app.Get("/health", HealthCheck(mStore))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("List", mock.Anything, "content.json").Return(nil, errors.New("unreachable"))

		app := fiber.New()
		app.Get("/health", HealthCheck(mStore))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.False(t, body.Success)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListItems(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Get("/api/items", ListItems(mockSvc))

	data := model.Empty()
	data.Docs = []model.Item{{ID: "1", Title: "Spec", Type: model.TypeDoc}}
	mockSvc.On("ListContent", mock.Anything).Return(data, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.ContentData
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Docs, 1)
	assert.Empty(t, result.Photos)
	mockSvc.AssertExpectations(t)
}

func TestAddDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Post("/api/items", AddDocument(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		item := &model.Item{ID: "1", Title: "Untitled Document", Type: model.TypeDoc}
		mockSvc.On("AddDocument", mock.Anything, "https://docs.google.com/document/d/abc/edit", "").
			Return(item, nil).Once()

		resp := post(`{"url":"https://docs.google.com/document/d/abc/edit"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool       `json:"success"`
			Item    model.Item `json:"item"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, "1", body.Item.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing url", func(t *testing.T) {
		resp := post(`{"title":"no url"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_URL", body.Error.Code)
	})

	t.Run("non-string url", func(t *testing.T) {
		resp := post(`{"url":12345}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_URL", body.Error.Code)
	})

	t.Run("not a google doc url", func(t *testing.T) {
		mockSvc.On("AddDocument", mock.Anything, "javascript:alert(1)", "").
			Return(nil, service.ErrNotGoogleDocURL).Once()

		resp := post(`{"url":"javascript:alert(1)"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_GOOGLE_DOC_URL", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("AddDocument", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("storage down")).Once()

		resp := post(`{"url":"https://docs.google.com/document/d/abc/edit"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateItemTitle(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Put("/api/items", UpdateItemTitle(mockSvc))

	put := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPut, "/api/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UpdateItemTitle", mock.Anything, "1", model.TypeDoc, "Renamed").
			Return(true, nil).Once()

		resp := put(`{"id":"1","type":"doc","title":"Renamed"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body["success"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found reports success false", func(t *testing.T) {
		mockSvc.On("UpdateItemTitle", mock.Anything, "missing", model.TypeDoc, "x").
			Return(false, nil).Once()

		resp := put(`{"id":"missing","type":"doc","title":"x"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body["success"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		for _, body := range []string{
			`{"type":"doc","title":"x"}`,
			`{"id":"1","title":"x"}`,
			`{"id":"1","type":"doc"}`,
		} {
			resp := put(body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var res errorPayload
			json.NewDecoder(resp.Body).Decode(&res)
			assert.Equal(t, "MISSING_FIELD", res.Error.Code)
		}
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("UpdateItemTitle", mock.Anything, "1", model.TypeDoc, "x").
			Return(false, errors.New("put fail")).Once()

		resp := put(`{"id":"1","type":"doc","title":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteItem(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Delete("/api/items", DeleteItem(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("DeleteItem", mock.Anything, "42", model.TypePhoto).Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/items?id=42&type=photo", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body["success"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing query params", func(t *testing.T) {
		for _, target := range []string{"/api/items", "/api/items?id=42", "/api/items?type=doc"} {
			req := httptest.NewRequest(http.MethodDelete, target, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("DeleteItem", mock.Anything, "42", model.TypeDoc).
			Return(false, errors.New("put fail")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/items?id=42&type=doc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestBulkDelete(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Post("/api/items/bulk-delete", BulkDelete(mockSvc))

	t.Run("aggregate counts", func(t *testing.T) {
		mockSvc.On("DeleteItems", mock.Anything, []service.ItemRef{
			{ID: "1", Type: model.TypeDoc},
			{ID: "2", Type: model.TypePhoto},
		}).Return(&service.BulkDeleteResult{Deleted: 1, Failed: 1}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/items/bulk-delete",
			strings.NewReader(`{"items":[{"id":"1","type":"doc"},{"id":"2","type":"photo"}]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Deleted int  `json:"deleted"`
			Failed  int  `json:"failed"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, 1, body.Deleted)
		assert.Equal(t, 1, body.Failed)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty batch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/items/bulk-delete", strings.NewReader(`{"items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ITEMS_REQUIRED", res.Error.Code)
	})
}

func TestUploadPhoto(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Post("/api/upload", UploadPhoto(mockSvc))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "beach.jpg")
		part.Write([]byte("jpeg bytes"))
		writer.Close()

		item := &model.Item{ID: "1", Title: "beach.jpg", Type: model.TypePhoto}
		mockSvc.On("UploadPhoto", mock.Anything, mock.Anything, "beach.jpg", mock.Anything, mock.Anything).
			Return(item, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Success bool       `json:"success"`
			Item    model.Item `json:"item"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, "beach.jpg", result.Item.Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		// Missing content-type and body
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "beach.jpg")
		part.Write([]byte("jpeg bytes"))
		writer.Close()

		mockSvc.On("UploadPhoto", mock.Anything, mock.Anything, "beach.jpg", mock.Anything, mock.Anything).
			Return(nil, errors.New("upload failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UPLOAD_FAILED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Get("/api/docs/:id", GetDocument(mockSvc))

	t.Run("success with embed url", func(t *testing.T) {
		doc := &model.Item{ID: "7", Type: model.TypeDoc, URL: "https://docs.google.com/document/d/abc/edit?usp=sharing"}
		mockSvc.On("GetDocument", mock.Anything, "7").Return(doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Item     model.Item `json:"item"`
			EmbedURL string     `json:"embedUrl"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "7", body.Item.ID)
		assert.Equal(t, "https://docs.google.com/document/d/abc/preview", body.EmbedURL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GetDocument", mock.Anything, "missing").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockContentService)
	mStore := new(storeMocks.MockStorage)
	RegisterRoutes(app, mStore, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		// Fiber returns 405 by default if route exists but method doesn't match
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
