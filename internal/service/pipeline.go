package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MsgUnexpectedFailure covers anything the pipeline did not anticipate.
const MsgUnexpectedFailure = "Something went wrong while answering your question. Please try asking again."

// ChatResult is the pipeline's sole externally observable product per turn.
type ChatResult struct {
	Escalated bool
	Answer    string
	Documents []DocumentMatch
}

// Pipeline runs one student question through the gate, matcher, classifier,
// aggregator and composer. Nothing in here is fatal to the hosting process:
// every failure path produces a string for the student.
type Pipeline struct {
	gate       *EscalationGate
	matcher    *DocumentMatcher
	classifier *Classifier
	retriever  *Retriever
	responder  *Responder
	history    *ConversationHistory
	logger     *zap.Logger
}

func NewPipeline(
	gate *EscalationGate,
	matcher *DocumentMatcher,
	classifier *Classifier,
	retriever *Retriever,
	responder *Responder,
	history *ConversationHistory,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		gate:       gate,
		matcher:    matcher,
		classifier: classifier,
		retriever:  retriever,
		responder:  responder,
		history:    history,
		logger:     logger,
	}
}

// Answer processes one turn. An escalated query terminates before any
// retrieval or model call and the student receives only the advisory.
func (p *Pipeline) Answer(ctx context.Context, sessionID, question string) (result ChatResult) {
	defer func() {
		if r := recover(); r != nil {
			detail := fmt.Sprintf("%v", r)
			if len(detail) > 200 {
				detail = detail[:200]
			}
			p.logger.Error("Pipeline panic recovered", zap.String("detail", detail))
			result = ChatResult{Answer: MsgUnexpectedFailure}
		}
	}()

	verdict := p.gate.Evaluate(ctx, question)
	if verdict.Escalated {
		return ChatResult{
			Escalated: true,
			Answer:    verdict.Message,
		}
	}

	var offers []DocumentMatch
	if p.matcher.WantsDocument(question) {
		offers = p.matcher.FindMatches(question)
	}

	classification := p.classifier.Classify(question)
	p.logger.Info("Query classified",
		zap.String("category", string(classification.Category)),
		zap.String("confidence", string(classification.Confidence)),
		zap.Int("keywords", len(classification.Keywords)),
	)

	retrieved := p.retriever.Retrieve(ctx, question, classification)

	answer := p.responder.Generate(ctx, question, retrieved, offers, p.history.Render(sessionID))

	p.history.Append(sessionID, question, answer)

	return ChatResult{
		Escalated: false,
		Answer:    answer,
		Documents: offers,
	}
}
