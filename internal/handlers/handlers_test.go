package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/services"
)

const exampleResume = "I led a team and built scalable systems. Education: BS CS. Skills: Python, Java. Projects: built a compiler. Contact: a@b.com"

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) (embedding.Vector, error) {
	return nil, fmt.Errorf("%w: provider down", embedding.ErrEmbedding)
}

func (failingEmbedder) Dimensions() int { return 3 }
func (failingEmbedder) Name() string    { return "failing" }

type fakeCatalog struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]models.JobDescription
	matches   []models.JobMatch
	searchErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{rows: make(map[uuid.UUID]models.JobDescription)}
}

func (f *fakeCatalog) Create(_ context.Context, title, content string) (*models.JobDescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jd := models.JobDescription{
		ID:          uuid.New(),
		Title:       title,
		Content:     content,
		IndexStatus: models.IndexPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.rows[jd.ID] = jd
	return &jd, nil
}

func (f *fakeCatalog) Get(_ context.Context, id uuid.UUID) (*models.JobDescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jd, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &jd, nil
}

func (f *fakeCatalog) List(_ context.Context, limit, offset int) ([]models.JobDescription, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []models.JobDescription
	for _, jd := range f.rows {
		items = append(items, jd)
	}
	return items, int64(len(f.rows)), nil
}

func (f *fakeCatalog) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCatalog) Index(context.Context, uuid.UUID) error { return nil }

func (f *fakeCatalog) Search(_ context.Context, resume string, _ int) ([]models.JobMatch, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.matches, nil
}

type fakeIndexer struct {
	enqueued []uuid.UUID
}

func (f *fakeIndexer) Start(context.Context) {}
func (f *fakeIndexer) Stop()                 {}
func (f *fakeIndexer) Enqueue(id uuid.UUID)  { f.enqueued = append(f.enqueued, id) }

type fakePDFParser struct {
	text string
	err  error
}

func (f fakePDFParser) ExtractText([]byte) (string, error) { return f.text, f.err }

func (f fakePDFParser) ExtractTextWithMetaData([]byte) (*services.PDFContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.PDFContent{Text: f.text, PageCount: 1}, nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func multipartFile(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}
