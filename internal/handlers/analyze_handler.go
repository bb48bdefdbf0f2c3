package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/scoring"
	"alfredoptarigan/resume-radar/internal/services"
)

type AnalyzeHandler struct {
	analyzer  scoring.Analyzer
	catalog   services.CatalogService
	validator *validator.Validate
	log       *zap.Logger
}

// NewAnalyzeHandler builds the handler. catalog may be nil, in which case
// requests that reference a stored job description are rejected.
func NewAnalyzeHandler(
	analyzer scoring.Analyzer,
	catalog services.CatalogService,
	validate *validator.Validate,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		catalog:   catalog,
		validator: validate,
		log:       log,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	jobDescription := req.JobDescriptionText()

	if req.JobDescriptionID != "" && jobDescription == "" {
		if h.catalog == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "job_description_id requires the job description catalog",
			})
		}

		id := uuid.MustParse(req.JobDescriptionID)
		jd, err := h.catalog.Get(c.UserContext(), id)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job description not found",
			})
		}
		if err != nil {
			h.log.Error("failed to load job description", zap.String("id", req.JobDescriptionID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load job description")
		}
		jobDescription = jd.Content
	}

	result, err := h.analyzer.Analyze(c.UserContext(), req.Resume, jobDescription)
	if errors.Is(err, embedding.ErrEmbedding) {
		h.log.Error("embedding failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Embedding provider failed")
	}
	if err != nil {
		h.log.Error("analysis failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to analyze resume")
	}

	return c.JSON(result)
}
