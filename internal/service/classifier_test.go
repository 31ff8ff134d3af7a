package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_TwoKeywordsGiveHighConfidence(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("When is the exam and where do I get my hall ticket?")

	assert.Equal(t, CategoryExam, result.Category)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	assert.Contains(t, result.Keywords, "exam")
	assert.Contains(t, result.Keywords, "hall ticket")
}

func TestClassify_SingleKeywordGivesLowConfidence(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("tell me about scholarship options")

	assert.Equal(t, CategoryScholarship, result.Category)
	assert.Equal(t, ConfidenceLow, result.Confidence)
}

func TestClassify_LargerCountWins(t *testing.T) {
	c := NewClassifier()

	// One exam hit ("exam") against three fees hits ("fee", "payment", "fine").
	result := c.Classify("what fine do I pay if my exam fee payment is late")

	assert.Equal(t, CategoryFees, result.Category)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
}

func TestClassify_NoMatchDefaultsToGeneral(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("hello there")

	assert.Equal(t, CategoryGeneral, result.Category)
	assert.Equal(t, ConfidenceLow, result.Confidence)
	assert.Empty(t, result.Keywords)
}

func TestClassify_TieKeepsEarlierCategory(t *testing.T) {
	c := NewClassifier()

	// One hit each for exam ("exam") and library ("book"); exam registers
	// first in the table, so it keeps the win.
	result := c.Classify("exam book")

	assert.Equal(t, CategoryExam, result.Category)
	assert.Equal(t, ConfidenceLow, result.Confidence)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("ATTENDANCE Requirement PERCENTAGE")

	assert.Equal(t, CategoryAttendance, result.Category)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
}

func TestClassify_KeywordsDeduplicatedAcrossCategories(t *testing.T) {
	c := NewClassifier()

	// "library fee" is a fees keyword; "library" and "fee" also match on
	// their own. Every keyword appears once.
	result := c.Classify("how much is the library fee")

	seen := make(map[string]int)
	for _, kw := range result.Keywords {
		seen[kw]++
	}
	for kw, n := range seen {
		assert.Equal(t, 1, n, "keyword %q reported more than once", kw)
	}
}
