package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eduagent/pkg/config"
	"eduagent/pkg/ollama"

	"go.uber.org/zap"
)

// NoDataSentinel is emitted when every context section is empty. The prompt
// tells the model to treat this exact line as "answer that you don't have
// the information", so it must stay byte-stable.
const NoDataSentinel = "No matching academic records were found for this query."

// ClosingSentence ends every generated answer; the prompt demands it verbatim.
const ClosingSentence = "Is there anything else I can help you with?"

// Fixed user-safe messages for each model transport failure. These are the
// only errors a student ever sees; raw transport errors stay in the logs.
const (
	MsgEmptyAnswer       = "I couldn't put together an answer this time. Please try rephrasing your question."
	MsgServiceDegraded   = "The answer service is temporarily degraded. Please try again in a few minutes."
	MsgServiceNotStarted = "The local language model service is not running. Ask an administrator to start it with 'ollama serve' and try again."
	MsgStillWarmingUp    = "The language model is still warming up. Please try again in a moment."
)

// Generator is the language-model endpoint; pkg/ollama.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Responder renders retrieved context into a constrained prompt, invokes the
// model once per turn, and maps transport failures to fixed messages.
type Responder struct {
	generator   Generator
	institution config.InstitutionConfig
	logger      *zap.Logger
}

func NewResponder(generator Generator, institution config.InstitutionConfig, logger *zap.Logger) *Responder {
	return &Responder{
		generator:   generator,
		institution: institution,
		logger:      logger,
	}
}

// Generate never returns an error: every failure path yields a user-safe
// string instead.
func (r *Responder) Generate(ctx context.Context, question string, retrieved RetrievedContext, offers []DocumentMatch, history string) string {
	prompt := r.BuildPrompt(question, retrieved, offers, history)

	answer, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return r.mapFailure(err)
	}

	return answer
}

func (r *Responder) mapFailure(err error) string {
	var statusErr *ollama.StatusError

	switch {
	case errors.Is(err, ollama.ErrEmptyResponse):
		return MsgEmptyAnswer
	case errors.Is(err, ollama.ErrTimeout):
		return MsgStillWarmingUp
	case errors.Is(err, ollama.ErrUnavailable):
		r.logger.Error("Model service unreachable", zap.Error(err))
		return MsgServiceNotStarted
	case errors.As(err, &statusErr):
		r.logger.Error("Model service returned an error status",
			zap.Int("status", statusErr.Code),
		)
		return MsgServiceDegraded
	default:
		r.logger.Error("Model call failed", zap.Error(err))
		return MsgServiceDegraded
	}
}

// FormatContext renders the context sections in a fixed order. An entirely
// empty context yields the sentinel line.
func (r *Responder) FormatContext(retrieved RetrievedContext) string {
	if len(retrieved.FAQs) == 0 && len(retrieved.Exams) == 0 &&
		len(retrieved.Fees) == 0 && len(retrieved.Passages) == 0 {
		return NoDataSentinel
	}

	var b strings.Builder

	if len(retrieved.FAQs) > 0 {
		b.WriteString("Frequently asked questions:\n")
		for _, faq := range retrieved.FAQs {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", faq.Question, faq.Answer)
		}
		b.WriteString("\n")
	}

	if len(retrieved.Exams) > 0 {
		b.WriteString("Exam schedule:\n")
		for _, exam := range retrieved.Exams {
			fmt.Fprintf(&b, "- %s: %s at %s, %s (semester %d)\n",
				exam.Subject, exam.Date, exam.Time, exam.Venue, exam.Semester)
		}
		b.WriteString("\n")
	}

	if len(retrieved.Fees) > 0 {
		b.WriteString("Fee structure:\n")
		for _, fee := range retrieved.Fees {
			fmt.Fprintf(&b, "- %s: Rs. %.2f, due %s. %s\n",
				fee.Type, fee.Amount, fee.DueDate, fee.Description)
		}
		b.WriteString("\n")
	}

	if len(retrieved.Passages) > 0 {
		b.WriteString("Document excerpts:\n")
		for _, passage := range retrieved.Passages {
			fmt.Fprintf(&b, "[Source: %s]\n%s\n\n", passage.SourceFile, passage.Text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// BuildPrompt assembles the identity preamble, the formatted context and the
// question. The preamble is parameterized only by institution configuration.
func (r *Responder) BuildPrompt(question string, retrieved RetrievedContext, offers []DocumentMatch, history string) string {
	inst := r.institution

	var b strings.Builder

	fmt.Fprintf(&b, "You are the virtual helpdesk assistant of %s, an %s located in %s, established in %s. Your purpose is %s.\n\n",
		inst.Name, inst.Type, inst.Location, inst.EstablishedYear, inst.Purpose)

	b.WriteString("Follow these rules without exception:\n")
	fmt.Fprintf(&b, "1. If asked who or what you are, reply exactly: \"I am the virtual helpdesk assistant of %s.\"\n", inst.Name)
	b.WriteString("2. Answer ONLY from the academic information below. Never answer from general knowledge, and never state facts about any institution that are not in the information below.\n")
	fmt.Fprintf(&b, "3. If the information below does not answer the question, or it says \"%s\", reply exactly: \"I don't have that information on hand. Please contact the administrative office for help with this.\" Do not guess.\n", NoDataSentinel)
	b.WriteString("4. Never reveal personal, placement or internship details about any individual.\n")
	fmt.Fprintf(&b, "5. End every answer with exactly: \"%s\"\n", ClosingSentence)
	if len(offers) > 0 {
		b.WriteString("6. Relevant documents were found for this question; mention that a download option will appear below your answer.\n")
	}
	b.WriteString("\n")

	if history != "" {
		b.WriteString("Recent conversation:\n")
		b.WriteString(history)
		b.WriteString("\n")
	}

	b.WriteString("Academic information:\n")
	b.WriteString(r.FormatContext(retrieved))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Student question: %s\n", question)

	return b.String()
}
