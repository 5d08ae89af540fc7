package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/pkg/storage"
)

// ObjectStorage is the slice of pkg/storage used by the upload routes.
// Satisfied by *storage.Client.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, filename, contentType, folder string) (*storage.PresignedUpload, error)
	ListFiles(ctx context.Context, prefix string) ([]storage.StoredObject, error)
}

// PresignRequest asks for a presigned upload URL. Only images are accepted.
type PresignRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,startswith=image/"`
}

// UploadHandler handles presigned upload URLs and object listings.
type UploadHandler struct {
	store    ObjectStorage
	validate *validator.Validate
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store ObjectStorage) *UploadHandler {
	return &UploadHandler{
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin upload routes.
func (h *UploadHandler) RegisterRoutes(admin fiber.Router) {
	uploads := admin.Group("/uploads")
	uploads.Post("/presign", h.HandlePresign)
	uploads.Get("/", h.HandleListFiles)
}

// HandlePresign returns a presigned PUT URL for an image upload.
func (h *UploadHandler) HandlePresign(c *fiber.Ctx) error {
	var req PresignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only image files are allowed",
			"errors":  validationErrorMap(err),
		})
	}

	result, err := h.store.PresignUpload(c.Context(), req.Filename, req.ContentType, "images")
	if err != nil {
		return respondError(c, err, "Could not presign upload")
	}
	return c.JSON(result)
}

// HandleListFiles lists stored objects, newest first.
func (h *UploadHandler) HandleListFiles(c *fiber.Ctx) error {
	files, err := h.store.ListFiles(c.Context(), c.Query("prefix"))
	if err != nil {
		return respondError(c, err, "Could not list files")
	}
	return c.JSON(files)
}
