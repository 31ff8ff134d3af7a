package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduagent/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// escalationTriggers is scanned in order; the first match is cited as the
// reason.
var escalationTriggers = []string{
	"complaint", "complain", "grievance", "appeal",
	"unfair", "discrimination", "injustice",
	"harassment", "ragging", "bully", "threat", "threaten",
	"abuse", "violence", "danger", "unsafe",
	"mental health", "depressed", "depression", "anxiety",
	"suicide", "suicidal", "self harm", "hurt myself",
	"emergency", "accident", "urgent help",
	"fraud", "wrong result", "incorrect marks",
	"wrong marks", "result error", "cheating",
}

// EscalationAdvisory is the only text a student sees for an escalated turn.
const EscalationAdvisory = "Your query has been forwarded to our administrative staff. " +
	"It looks like your question may need personal attention from our team. " +
	"A staff member will review your concern and respond within 24 hours. " +
	"For urgent matters, visit the Administrative Office directly. " +
	"For emergencies, contact the Principal's Office immediately. " +
	"You are not alone — we are here to help."

type Verdict struct {
	Escalated bool
	Reason    string
	Message   string
}

// EscalationStore persists flagged queries for staff review.
type EscalationStore interface {
	Create(ctx context.Context, eq *models.EscalatedQuery) error
}

// EscalationGate intercepts sensitive queries before any retrieval or model
// call. It is the first and cheapest gate: routing to a human must never
// depend on model availability.
type EscalationGate struct {
	store  EscalationStore
	logger *zap.Logger
}

func NewEscalationGate(store EscalationStore, logger *zap.Logger) *EscalationGate {
	return &EscalationGate{
		store:  store,
		logger: logger,
	}
}

// Evaluate scans the trigger list case-insensitively and returns on the first
// match. Persistence is best-effort: a store failure is logged and swallowed,
// and the verdict still reports escalated.
func (g *EscalationGate) Evaluate(ctx context.Context, query string) Verdict {
	trigger, found := matchTrigger(query)
	if !found {
		return Verdict{Escalated: false}
	}

	reason := fmt.Sprintf("Sensitive topic detected: '%s'", trigger)

	eq := &models.EscalatedQuery{
		ID:           uuid.New(),
		StudentQuery: query,
		Reason:       reason,
		Status:       models.EscalationStatusPending,
		CreatedAt:    time.Now(),
	}
	if err := g.store.Create(ctx, eq); err != nil {
		g.logger.Error("Failed to persist escalated query", zap.Error(err))
	} else {
		g.logger.Warn("Query escalated for staff review", zap.String("reason", reason))
	}

	return Verdict{
		Escalated: true,
		Reason:    reason,
		Message:   EscalationAdvisory,
	}
}

func matchTrigger(query string) (string, bool) {
	queryLower := strings.ToLower(query)
	for _, trigger := range escalationTriggers {
		if strings.Contains(queryLower, trigger) {
			return trigger, true
		}
	}
	return "", false
}
