package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/services"
)

// uploadOverhead leaves room for multipart framing so an oversized PDF still
// reaches HandleExtractText and gets a typed too_large response.
const uploadOverhead = 1 << 20

// UploadBodyLimit returns the Fiber BodyLimit for a maximum PDF size. Zero,
// for an unlimited PDF size, selects Fiber's default limit.
func UploadBodyLimit(maxFileSize int64) int {
	if maxFileSize <= 0 {
		return 0
	}
	return int(maxFileSize) + uploadOverhead
}

type ExtractHandler struct {
	pdfParser   services.PDFParserService
	maxFileSize int64
	log         *zap.Logger
}

func NewExtractHandler(pdfParser services.PDFParserService, maxFileSize int64, log *zap.Logger) *ExtractHandler {
	return &ExtractHandler{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleExtractText handles POST /extract-text. The upload is read in memory
// and never written to disk.
func (h *ExtractHandler) HandleExtractText(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ExtractTextError{
			Error:  fmt.Sprintf("PDF exceeds the maximum size of %d bytes.", h.maxFileSize),
			Reason: services.ErrTooLarge.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file")
	}

	text, err := h.pdfParser.ExtractText(data)
	if err != nil {
		message := "Error reading PDF."
		var extractionErr *services.ExtractionError
		if errors.As(err, &extractionErr) {
			message = extractionErr.Message
		}
		h.log.Info("pdf extraction failed",
			zap.String("filename", fileHeader.Filename),
			zap.String("reason", services.ReasonCode(err)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ExtractTextError{
			Error:  message,
			Reason: services.ReasonCode(err),
		})
	}

	return c.JSON(models.ExtractTextResponse{Text: text})
}
