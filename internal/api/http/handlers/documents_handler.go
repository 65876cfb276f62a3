package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// DocumentsHandler manages the deal-locker endpoints.
type DocumentsHandler struct {
	service *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documentService *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{service: documentService}
}

// Upload POST /api/documents/upload/:dealId. Expects a multipart form
// with a "file" part.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file is required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("could not read uploaded file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewValidationError("could not read uploaded file", nil)
	}

	document, err := h.service.Upload(c.UserContext(), principal.FirmID(), c.Params("dealId"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": documentResponse(document, "")})
}

// ListForDeal GET /api/documents/deal/:dealId.
func (h *DocumentsHandler) ListForDeal(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	documents, err := h.service.ListForDeal(c.UserContext(), principal.FirmID(), c.Params("dealId"))
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse, 0, len(documents))
	for i := range documents {
		items = append(items, documentWithUploaderResponse(&documents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /api/documents/:documentId.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	if err := h.service.Delete(c.UserContext(), principal.FirmID(), c.Params("documentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "document deleted"})
}

func documentResponse(document *domain.Document, uploaderName string) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:           document.ID,
		DealID:       document.DealID,
		FileName:     document.FileName,
		FileURL:      document.FileURL,
		FileSize:     document.FileSize,
		FileType:     document.FileType,
		UploadedBy:   document.UploadedBy,
		UploaderName: uploaderName,
		CreatedAt:    document.CreatedAt,
	}
}

func documentWithUploaderResponse(item *repository.DocumentWithUploader) dto.DocumentResponse {
	return documentResponse(&item.Document, item.UploaderName)
}
