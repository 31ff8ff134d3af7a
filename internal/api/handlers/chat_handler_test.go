package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"eduagent/internal/dto"
	"eduagent/internal/models"
	"eduagent/internal/service"
	"eduagent/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEscalationStore struct{}

func (stubEscalationStore) Create(context.Context, *models.EscalatedQuery) error { return nil }

type stubFAQStore struct{}

func (stubFAQStore) Search(context.Context, string, string) ([]*models.FAQ, error) {
	return []*models.FAQ{{Question: "Q", Answer: "The minimum attendance requirement is 75%."}}, nil
}

type stubExamStore struct{}

func (stubExamStore) ListAll(context.Context) ([]*models.ExamSchedule, error) { return nil, nil }

type stubFeeStore struct{}

func (stubFeeStore) ListAll(context.Context) ([]*models.Fee, error) { return nil, nil }

type stubPassageIndex struct{}

func (stubPassageIndex) Search(context.Context, string, int) ([]service.Passage, error) {
	return nil, nil
}

type stubGenerator struct{ answer string }

func (g stubGenerator) Generate(context.Context, string) (string, error) { return g.answer, nil }

func newChatApp(t *testing.T, answer, docsDir string) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	retriever := service.NewRetriever(stubFAQStore{}, stubExamStore{}, stubFeeStore{}, stubPassageIndex{}, 3, logger)
	responder := service.NewResponder(stubGenerator{answer: answer}, config.InstitutionConfig{Name: "MBIT"}, logger)

	pipeline := service.NewPipeline(
		service.NewEscalationGate(stubEscalationStore{}, logger),
		service.NewDocumentMatcher(docsDir),
		service.NewClassifier(),
		retriever,
		responder,
		service.NewConversationHistory(5),
		logger,
	)

	app := fiber.New()
	app.Post("/api/v1/chat", NewChatHandler(pipeline, logger).Chat)
	return app
}

func postChat(t *testing.T, app *fiber.App, body any) (*dto.ChatResponse, int) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return nil, resp.StatusCode
	}

	var out dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out, resp.StatusCode
}

func TestChat_AnswersQuestion(t *testing.T) {
	app := newChatApp(t, "The minimum attendance requirement is 75%.", t.TempDir())

	out, status := postChat(t, app, dto.ChatRequest{Message: "what is the minimum attendance requirement?"})

	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, out.Escalated)
	assert.Equal(t, "The minimum attendance requirement is 75%.", out.Answer)
	assert.Empty(t, out.Documents)
}

func TestChat_EscalatedQueryReturnsAdvisory(t *testing.T) {
	app := newChatApp(t, "unused", t.TempDir())

	out, status := postChat(t, app, dto.ChatRequest{Message: "I want to report harassment"})

	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Escalated)
	assert.Equal(t, service.EscalationAdvisory, out.Answer)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	app := newChatApp(t, "unused", t.TempDir())

	_, status := postChat(t, app, dto.ChatRequest{Message: "   "})

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestChat_DownloadURLEscapesFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Exam Timetable Sem2.pdf"), []byte("%PDF-1.4"), 0o644))
	app := newChatApp(t, "ok", dir)

	out, status := postChat(t, app, dto.ChatRequest{Message: "can I get the exam timetable"})

	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, out.Documents, 1)
	assert.Equal(t, "Exam Timetable Sem2.pdf", out.Documents[0].FileName)
	assert.Equal(t, "/api/v1/documents/Exam%20Timetable%20Sem2.pdf", out.Documents[0].DownloadURL)
}

func TestChat_MalformedBodyRejected(t *testing.T) {
	app := newChatApp(t, "unused", t.TempDir())

	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
