package service

import (
	"context"
	"errors"
	"testing"

	"eduagent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEscalationStore struct {
	created []*models.EscalatedQuery
	err     error
}

func (s *fakeEscalationStore) Create(_ context.Context, eq *models.EscalatedQuery) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, eq)
	return nil
}

func TestEvaluate_SensitiveQueryEscalates(t *testing.T) {
	store := &fakeEscalationStore{}
	gate := NewEscalationGate(store, zap.NewNop())

	verdict := gate.Evaluate(context.Background(), "I feel suicidal and need help")

	assert.True(t, verdict.Escalated)
	assert.Equal(t, "Sensitive topic detected: 'suicidal'", verdict.Reason)
	assert.Equal(t, EscalationAdvisory, verdict.Message)

	require.Len(t, store.created, 1)
	assert.Equal(t, "I feel suicidal and need help", store.created[0].StudentQuery)
	assert.Equal(t, models.EscalationStatusPending, store.created[0].Status)
}

func TestEvaluate_WordFormsOfSensitiveTriggers(t *testing.T) {
	// Adjective and noun forms must both reach the gate; neither is a
	// substring of the other's trigger.
	tests := []struct {
		query  string
		reason string
	}{
		{"thinking about suicide", "Sensitive topic detected: 'suicide'"},
		{"I feel suicidal", "Sensitive topic detected: 'suicidal'"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			gate := NewEscalationGate(&fakeEscalationStore{}, zap.NewNop())

			verdict := gate.Evaluate(context.Background(), tt.query)

			assert.True(t, verdict.Escalated)
			assert.Equal(t, tt.reason, verdict.Reason)
		})
	}
}

func TestEvaluate_MatchesCaseInsensitively(t *testing.T) {
	store := &fakeEscalationStore{}
	gate := NewEscalationGate(store, zap.NewNop())

	verdict := gate.Evaluate(context.Background(), "I want to file a COMPLAINT against ragging")

	assert.True(t, verdict.Escalated)
	// "complaint" precedes "ragging" in the trigger list.
	assert.Equal(t, "Sensitive topic detected: 'complaint'", verdict.Reason)
}

func TestEvaluate_OrdinaryQueryPasses(t *testing.T) {
	store := &fakeEscalationStore{}
	gate := NewEscalationGate(store, zap.NewNop())

	verdict := gate.Evaluate(context.Background(), "when is the chemistry exam")

	assert.False(t, verdict.Escalated)
	assert.Empty(t, verdict.Reason)
	assert.Empty(t, store.created)
}

func TestEvaluate_StoreFailureStillEscalates(t *testing.T) {
	store := &fakeEscalationStore{err: errors.New("connection reset")}
	gate := NewEscalationGate(store, zap.NewNop())

	verdict := gate.Evaluate(context.Background(), "this grading is unfair, I want to appeal")

	assert.True(t, verdict.Escalated)
	assert.Equal(t, EscalationAdvisory, verdict.Message)
}
