package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"eduagent/pkg/config"
	"eduagent/pkg/ollama"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, g.err
}

func testInstitution() config.InstitutionConfig {
	return config.InstitutionConfig{
		Name:            "MBIT, CVM University",
		Location:        "Vallabh Vidyanagar, Gujarat",
		Type:            "engineering college",
		EstablishedYear: "2004",
		Purpose:         "helping students",
	}
}

func TestGenerate_ReturnsModelAnswer(t *testing.T) {
	gen := &fakeGenerator{answer: "The minimum attendance is 75%. Is there anything else I can help you with?"}
	r := NewResponder(gen, testInstitution(), zap.NewNop())

	answer := r.Generate(context.Background(), "attendance?", RetrievedContext{}, nil, "")

	assert.Equal(t, gen.answer, answer)
}

func TestGenerate_FailureMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty response", ollama.ErrEmptyResponse, MsgEmptyAnswer},
		{"timeout", fmt.Errorf("generate: %w", ollama.ErrTimeout), MsgStillWarmingUp},
		{"unreachable", fmt.Errorf("generate: %w", ollama.ErrUnavailable), MsgServiceNotStarted},
		{"bad status", &ollama.StatusError{Code: 500, Body: "boom"}, MsgServiceDegraded},
		{"unknown", errors.New("weird"), MsgServiceDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResponder(&fakeGenerator{err: tt.err}, testInstitution(), zap.NewNop())

			answer := r.Generate(context.Background(), "q", RetrievedContext{}, nil, "")

			assert.Equal(t, tt.want, answer)
		})
	}
}

func TestFormatContext_EmptyYieldsSentinel(t *testing.T) {
	r := NewResponder(&fakeGenerator{}, testInstitution(), zap.NewNop())

	out := r.FormatContext(RetrievedContext{})

	assert.Equal(t, NoDataSentinel, out)
	// Formatting is deterministic, the sentinel never drifts.
	assert.Equal(t, out, r.FormatContext(RetrievedContext{}))
}

func TestFormatContext_SectionOrder(t *testing.T) {
	r := NewResponder(&fakeGenerator{}, testInstitution(), zap.NewNop())

	out := r.FormatContext(RetrievedContext{
		FAQs:     []FAQEntry{{Question: "Q1", Answer: "A1"}},
		Exams:    []ExamEntry{{Subject: "Physics", Date: "2025-03-12", Time: "10:00 AM", Venue: "Hall B", Semester: 2}},
		Fees:     []FeeEntry{{Type: "Exam Fee", Amount: 800, DueDate: "Before exams", Description: "Processing"}},
		Passages: []Passage{{Text: "excerpt", SourceFile: "Handbook.pdf"}},
	})

	assert.Contains(t, out, "Q: Q1\nA: A1")
	assert.Contains(t, out, "- Physics: 2025-03-12 at 10:00 AM, Hall B (semester 2)")
	assert.Contains(t, out, "- Exam Fee: Rs. 800.00, due Before exams. Processing")
	assert.Contains(t, out, "[Source: Handbook.pdf]")

	// Sections appear in a fixed order.
	assert.Less(t, strings.Index(out, "Frequently asked questions:"), strings.Index(out, "Exam schedule:"))
	assert.Less(t, strings.Index(out, "Exam schedule:"), strings.Index(out, "Fee structure:"))
	assert.Less(t, strings.Index(out, "Fee structure:"), strings.Index(out, "Document excerpts:"))
	assert.NotContains(t, out, NoDataSentinel)
}

func TestBuildPrompt_ContainsContract(t *testing.T) {
	gen := &fakeGenerator{answer: "ok"}
	r := NewResponder(gen, testInstitution(), zap.NewNop())

	prompt := r.BuildPrompt("when is the exam?", RetrievedContext{}, nil, "")

	assert.Contains(t, prompt, "MBIT, CVM University")
	assert.Contains(t, prompt, "established in 2004")
	assert.Contains(t, prompt, NoDataSentinel)
	assert.Contains(t, prompt, ClosingSentence)
	assert.Contains(t, prompt, "Student question: when is the exam?")
	assert.NotContains(t, prompt, "Recent conversation:")
	assert.NotContains(t, prompt, "download option")
}

func TestBuildPrompt_MentionsOffersAndHistory(t *testing.T) {
	r := NewResponder(&fakeGenerator{}, testInstitution(), zap.NewNop())

	prompt := r.BuildPrompt("exam timetable please",
		RetrievedContext{},
		[]DocumentMatch{{FileName: "Exam_Timetable.pdf"}},
		"Student: hi\nAssistant: hello\n",
	)

	assert.Contains(t, prompt, "download option")
	assert.Contains(t, prompt, "Recent conversation:")
	assert.Contains(t, prompt, "Student: hi")
}
