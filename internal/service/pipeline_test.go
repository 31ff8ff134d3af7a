package service

import (
	"context"
	"strings"
	"testing"

	"eduagent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingFAQStore struct {
	faqs   []*models.FAQ
	called bool
}

func (s *countingFAQStore) Search(context.Context, string, string) ([]*models.FAQ, error) {
	s.called = true
	return s.faqs, nil
}

type recordingGenerator struct {
	answer string
	panics bool
	called bool
	prompt string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.called = true
	g.prompt = prompt
	if g.panics {
		panic("generator blew up")
	}
	return g.answer, nil
}

func newTestPipeline(t *testing.T, faqs *countingFAQStore, gen *recordingGenerator) *Pipeline {
	t.Helper()
	logger := zap.NewNop()

	retriever := NewRetriever(faqs, &fakeExamStore{}, &fakeFeeStore{}, &fakePassageIndex{}, 3, logger)
	responder := NewResponder(gen, testInstitution(), logger)

	return NewPipeline(
		NewEscalationGate(&fakeEscalationStore{}, logger),
		NewDocumentMatcher(t.TempDir()),
		NewClassifier(),
		retriever,
		responder,
		NewConversationHistory(5),
		logger,
	)
}

func TestAnswer_GroundedFAQFlowsIntoPrompt(t *testing.T) {
	faqs := &countingFAQStore{faqs: []*models.FAQ{{
		Category: "Attendance",
		Question: "What is the minimum attendance requirement?",
		Answer:   "The minimum attendance requirement is 75%.",
	}}}
	gen := &recordingGenerator{answer: "The minimum attendance requirement is 75%. Is there anything else I can help you with?"}
	p := newTestPipeline(t, faqs, gen)

	result := p.Answer(context.Background(), "s1", "what is the minimum attendance requirement?")

	assert.False(t, result.Escalated)
	assert.Equal(t, gen.answer, result.Answer)
	assert.True(t, gen.called)
	assert.Contains(t, gen.prompt, "The minimum attendance requirement is 75%.")
	assert.Contains(t, gen.prompt, "Student question: what is the minimum attendance requirement?")
}

func TestAnswer_EscalatedQueryShortCircuits(t *testing.T) {
	faqs := &countingFAQStore{}
	gen := &recordingGenerator{answer: "should never be used"}
	p := newTestPipeline(t, faqs, gen)

	result := p.Answer(context.Background(), "s1", "I am facing harassment in the hostel")

	assert.True(t, result.Escalated)
	assert.Equal(t, EscalationAdvisory, result.Answer)
	assert.Empty(t, result.Documents)
	assert.False(t, gen.called, "model must not be invoked for an escalated query")
	assert.False(t, faqs.called, "retrieval must not run for an escalated query")
}

func TestAnswer_HistoryCarriesAcrossTurns(t *testing.T) {
	faqs := &countingFAQStore{}
	gen := &recordingGenerator{answer: "answer one"}
	p := newTestPipeline(t, faqs, gen)

	p.Answer(context.Background(), "s1", "first question about fees")
	gen.answer = "answer two"
	p.Answer(context.Background(), "s1", "second question about fees")

	assert.Contains(t, gen.prompt, "Recent conversation:")
	assert.Contains(t, gen.prompt, "Student: first question about fees")
	assert.Contains(t, gen.prompt, "Assistant: answer one")
}

func TestAnswer_PanicYieldsFixedMessage(t *testing.T) {
	faqs := &countingFAQStore{}
	gen := &recordingGenerator{panics: true}
	p := newTestPipeline(t, faqs, gen)

	result := p.Answer(context.Background(), "s1", "what are the library hours")

	assert.False(t, result.Escalated)
	assert.Equal(t, MsgUnexpectedFailure, result.Answer)
}

func TestAnswer_EmptyContextPromptCarriesSentinel(t *testing.T) {
	faqs := &countingFAQStore{}
	gen := &recordingGenerator{answer: "ok"}
	p := newTestPipeline(t, faqs, gen)

	p.Answer(context.Background(), "s1", "what are the library hours")

	require.True(t, gen.called)
	assert.True(t, strings.Contains(gen.prompt, NoDataSentinel))
}
