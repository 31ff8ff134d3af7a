package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_RendersOldestFirst(t *testing.T) {
	h := NewConversationHistory(5)
	h.Append("s1", "hi", "hello")
	h.Append("s1", "fees?", "see fee structure")

	out := h.Render("s1")

	assert.Equal(t, "Student: hi\nAssistant: hello\nStudent: fees?\nAssistant: see fee structure\n", out)
}

func TestHistory_BoundedToMaxTurns(t *testing.T) {
	h := NewConversationHistory(2)
	h.Append("s1", "one", "1")
	h.Append("s1", "two", "2")
	h.Append("s1", "three", "3")

	out := h.Render("s1")

	assert.NotContains(t, out, "Student: one")
	assert.Contains(t, out, "Student: two")
	assert.Contains(t, out, "Student: three")
	assert.Equal(t, 2, strings.Count(out, "Student:"))
}

func TestHistory_SessionsAreIsolated(t *testing.T) {
	h := NewConversationHistory(5)
	h.Append("s1", "question A", "answer A")

	assert.Empty(t, h.Render("s2"))
	assert.Contains(t, h.Render("s1"), "question A")
}

func TestHistory_NonPositiveBoundFallsBack(t *testing.T) {
	h := NewConversationHistory(0)
	for i := 0; i < 10; i++ {
		h.Append("s1", "q", "a")
	}

	assert.Equal(t, 5, strings.Count(h.Render("s1"), "Student:"))
}
