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
	"alfredoptarigan/resume-radar/internal/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type JobDescriptionHandler struct {
	catalog   services.CatalogService
	indexer   services.Indexer
	validator *validator.Validate
	log       *zap.Logger
}

func NewJobDescriptionHandler(
	catalog services.CatalogService,
	indexer services.Indexer,
	validate *validator.Validate,
	log *zap.Logger,
) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		catalog:   catalog,
		indexer:   indexer,
		validator: validate,
		log:       log,
	}
}

// HandleCreate handles POST /job-descriptions
func (h *JobDescriptionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobDescriptionRequest

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

	jd, err := h.catalog.Create(c.UserContext(), req.Title, req.Content)
	if err != nil {
		h.log.Error("failed to create job description", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create job description")
	}

	h.indexer.Enqueue(jd.ID)

	return c.Status(fiber.StatusCreated).JSON(jd)
}

// HandleList handles GET /job-descriptions
func (h *JobDescriptionHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.catalog.List(c.UserContext(), limit, offset)
	if err != nil {
		h.log.Error("failed to list job descriptions", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list job descriptions")
	}

	return c.JSON(models.ListResponse[models.JobDescription]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleGet handles GET /job-descriptions/:id
func (h *JobDescriptionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job description ID format",
		})
	}

	jd, err := h.catalog.Get(c.UserContext(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job description not found",
		})
	}
	if err != nil {
		h.log.Error("failed to load job description", zap.Stringer("id", id), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load job description")
	}

	return c.JSON(jd)
}

// HandleDelete handles DELETE /job-descriptions/:id
func (h *JobDescriptionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job description ID format",
		})
	}

	err = h.catalog.Delete(c.UserContext(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job description not found",
		})
	}
	if err != nil {
		h.log.Error("failed to delete job description", zap.Stringer("id", id), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete job description")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearch handles POST /job-descriptions/search
func (h *JobDescriptionHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.SearchJobDescriptionsRequest

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

	matches, err := h.catalog.Search(c.UserContext(), req.Resume, req.Limit)
	switch {
	case errors.Is(err, services.ErrEmptySearchQuery):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume is empty",
		})
	case errors.Is(err, embedding.ErrEmbedding):
		h.log.Error("embedding failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Embedding provider failed")
	case err != nil:
		h.log.Error("failed to search job descriptions", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to search job descriptions")
	}

	return c.JSON(fiber.Map{"matches": matches})
}
