package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/services"
)

func newCatalogApp(catalog *fakeCatalog, indexer *fakeIndexer) *fiber.App {
	h := NewJobDescriptionHandler(catalog, indexer, NewValidator(), zap.NewNop())
	app := newTestApp()
	app.Post("/job-descriptions/search", h.HandleSearch)
	app.Post("/job-descriptions", h.HandleCreate)
	app.Get("/job-descriptions", h.HandleList)
	app.Get("/job-descriptions/:id", h.HandleGet)
	app.Delete("/job-descriptions/:id", h.HandleDelete)
	return app
}

func TestJobDescriptionCreateEnqueuesIndexing(t *testing.T) {
	catalog := newFakeCatalog()
	indexer := &fakeIndexer{}
	app := newCatalogApp(catalog, indexer)

	resp, body := doJSON(t, app, http.MethodPost, "/job-descriptions", models.CreateJobDescriptionRequest{
		Title:   "Backend Engineer",
		Content: "Go, Postgres",
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Backend Engineer", body["title"])
	assert.Equal(t, "pending", body["index_status"])
	require.Len(t, indexer.enqueued, 1)
	assert.Equal(t, body["id"], indexer.enqueued[0].String())
}

func TestJobDescriptionCreateValidation(t *testing.T) {
	indexer := &fakeIndexer{}
	app := newCatalogApp(newFakeCatalog(), indexer)

	resp, body := doJSON(t, app, http.MethodPost, "/job-descriptions", map[string]string{"content": "Go"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title failed required", body["error"])

	resp, _ = doJSON(t, app, http.MethodPost, "/job-descriptions", map[string]string{
		"title":   strings.Repeat("x", 201),
		"content": "Go",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, indexer.enqueued)
}

func TestJobDescriptionGetAndDelete(t *testing.T) {
	catalog := newFakeCatalog()
	app := newCatalogApp(catalog, &fakeIndexer{})
	jd, err := catalog.Create(t.Context(), "SRE", "linux")
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/job-descriptions/"+jd.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "linux", body["content"])

	resp, _ = doJSON(t, app, http.MethodGet, "/job-descriptions/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/job-descriptions/"+jd.ID.String(), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/job-descriptions/"+jd.ID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/job-descriptions/"+uuid.NewString(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestJobDescriptionList(t *testing.T) {
	catalog := newFakeCatalog()
	app := newCatalogApp(catalog, &fakeIndexer{})
	for i := range 3 {
		_, err := catalog.Create(t.Context(), fmt.Sprintf("Role %d", i), "content")
		require.NoError(t, err)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/job-descriptions?limit=500&offset=-3", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, defaultPageSize, body["limit"])
	assert.EqualValues(t, 0, body["offset"])
	assert.Len(t, body["items"], 3)
}

func TestJobDescriptionSearch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.matches = []models.JobMatch{{ID: uuid.NewString(), Title: "Backend Engineer", Similarity: 0.82}}
	app := newCatalogApp(catalog, &fakeIndexer{})

	resp, body := doJSON(t, app, http.MethodPost, "/job-descriptions/search", map[string]any{
		"resume": exampleResume,
		"limit":  3,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	matches, ok := body["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "Backend Engineer", matches[0].(map[string]any)["title"])

	resp, _ = doJSON(t, app, http.MethodPost, "/job-descriptions/search", map[string]any{
		"resume": exampleResume,
		"limit":  51,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJobDescriptionSearchErrors(t *testing.T) {
	catalog := newFakeCatalog()
	app := newCatalogApp(catalog, &fakeIndexer{})

	catalog.searchErr = services.ErrEmptySearchQuery
	resp, _ := doJSON(t, app, http.MethodPost, "/job-descriptions/search", map[string]any{"resume": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	catalog.searchErr = fmt.Errorf("%w: timeout", embedding.ErrEmbedding)
	resp, body := doJSON(t, app, http.MethodPost, "/job-descriptions/search", map[string]any{"resume": "x"})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.EqualValues(t, fiber.StatusBadGateway, body["code"])
}
