package handlers

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"eduagent/internal/dto"
	"eduagent/internal/ingest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	documentsDir string
	ingestor     *ingest.Ingestor
	logger       *zap.Logger
}

func NewDocumentHandler(documentsDir string, ingestor *ingest.Ingestor, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentsDir: documentsDir,
		ingestor:     ingestor,
		logger:       logger,
	}
}

// Download godoc
// @Summary Download an offered document
// @Description Serves a document file previously offered alongside a chat answer
// @Tags documents
// @Produce application/pdf
// @Param filename path string true "Document filename"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{filename} [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	// The chat handler percent-escapes offered filenames into download URLs.
	param := c.Params("filename")
	if unescaped, err := url.PathUnescape(param); err == nil {
		param = unescaped
	}

	filename, err := sanitizeFileName(param)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filename",
		})
	}

	path := filepath.Join(h.documentsDir, filename)
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	return c.Download(path, filename)
}

// Upload godoc
// @Summary Upload a document (staff only)
// @Description Stores a PDF in the document directory and ingests it into the passage index
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Security Bearer
// @Success 201 {object} dto.UploadDocumentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	filename, err := sanitizeFileName(file.Filename)
	if err != nil || !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are accepted",
		})
	}

	if err := os.MkdirAll(h.documentsDir, 0o755); err != nil {
		h.logger.Error("Failed to create documents directory", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store document",
		})
	}

	path := filepath.Join(h.documentsDir, filename)
	if err := c.SaveFile(file, path); err != nil {
		h.logger.Error("Failed to save uploaded document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store document",
		})
	}

	result, err := h.ingestor.ProcessPDF(c.UserContext(), path, filename)
	if err != nil {
		h.logger.Error("Document ingestion failed", zap.String("file", filename), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Document stored but could not be indexed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadDocumentResponse{
		FileName: result.FileName,
		Pages:    result.Pages,
		Chunks:   result.Chunks,
	})
}

// sanitizeFileName rejects anything that could escape the documents directory.
func sanitizeFileName(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", os.ErrInvalid
	}
	return name, nil
}
