package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"contentapi/internal/model"
	"contentapi/internal/service"
	"contentapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they translate requests into service
// calls and map the outcome onto the wire contract.
func RegisterRoutes(app *fiber.App, store storage.Storage, svc service.ContentService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/items", ListItems(svc))
	api.Post("/items", AddDocument(svc))
	api.Put("/items", UpdateItemTitle(svc))
	api.Delete("/items", DeleteItem(svc))
	api.Post("/items/bulk-delete", BulkDelete(svc))
	api.Post("/upload", UploadPhoto(svc))
	api.Get("/docs/:id", GetDocument(svc))
}

// HealthCheck verifies blob store connectivity by listing the content
// database prefix.
func HealthCheck(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, err := store.List(ctx, "content.json"); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListItems godoc
// @Summary List all documents and photos
// @Produce json
// @Success 200 {object} model.ContentData
// @Router /api/items [get]
func ListItems(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.ListContent(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(data)
	}
}

// addDocumentRequest keeps url and title untyped so a non-string url is a
// validation failure rather than a body-parse failure.
type addDocumentRequest struct {
	URL   any `json:"url"`
	Title any `json:"title"`
}

// AddDocument godoc
// @Summary Register a Google Doc link
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/items [post]
func AddDocument(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		url, ok := req.URL.(string)
		if !ok || url == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_URL", "url is required")
		}
		title, _ := req.Title.(string)

		item, err := svc.AddDocument(c.UserContext(), url, title)
		if err != nil {
			if errors.Is(err, service.ErrNotGoogleDocURL) {
				return writeError(c, fiber.StatusBadRequest, "NOT_GOOGLE_DOC_URL", "not a google doc url")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": true, "item": item})
	}
}

type updateTitleRequest struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// UpdateItemTitle godoc
// @Summary Rename a document or photo
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]any
// @Router /api/items [put]
func UpdateItemTitle(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateTitleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.ID == "" || req.Type == "" || req.Title == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "id, type and title are required")
		}

		ok, err := svc.UpdateItemTitle(c.UserContext(), req.ID, model.ItemType(req.Type), req.Title)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": ok})
	}
}

// DeleteItem godoc
// @Summary Delete a document or photo
// @Produce json
// @Param id query string true "item id"
// @Param type query string true "doc or photo"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]any
// @Router /api/items [delete]
func DeleteItem(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		itemType := c.Query("type")
		if id == "" || itemType == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "id and type are required")
		}

		ok, err := svc.DeleteItem(c.UserContext(), id, model.ItemType(itemType))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": ok})
	}
}

type bulkDeleteRequest struct {
	Items []service.ItemRef `json:"items"`
}

// BulkDelete godoc
// @Summary Delete a batch of items, reporting aggregate counts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/items/bulk-delete [post]
func BulkDelete(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if len(req.Items) == 0 {
			return writeError(c, fiber.StatusBadRequest, "ITEMS_REQUIRED", "items are required")
		}

		res := svc.DeleteItems(c.UserContext(), req.Items)
		return c.JSON(fiber.Map{"success": true, "deleted": res.Deleted, "failed": res.Failed})
	}
}

// UploadPhoto godoc
// @Summary Upload a photo (multipart field: file)
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/upload [post]
func UploadPhoto(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		item, err := svc.UploadPhoto(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", "upload failed")
		}
		return c.JSON(fiber.Map{"success": true, "item": item})
	}
}

// GetDocument godoc
// @Summary Get one doc record with its embeddable preview URL
// @Produce json
// @Param id path string true "doc id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/docs/{id} [get]
func GetDocument(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		item, err := svc.GetDocument(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"item": item, "embedUrl": service.EmbedURL(item.URL)})
	}
}
