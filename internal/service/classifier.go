package service

import "strings"

type Category string

const (
	CategoryExam        Category = "exam"
	CategoryFees        Category = "fees"
	CategoryAttendance  Category = "attendance"
	CategoryScholarship Category = "scholarship"
	CategoryAdmission   Category = "admission"
	CategoryLibrary     Category = "library"
	CategoryGeneral     Category = "general"
)

type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

type Classification struct {
	Category   Category
	Keywords   []string
	Confidence Confidence
}

type categoryEntry struct {
	name     Category
	keywords []string
}

// categoryTable is an ordered slice on purpose: when two categories score the
// same number of keyword hits, the one registered first wins. That tie-break
// is policy, not an accident of map iteration.
var categoryTable = []categoryEntry{
	{CategoryExam, []string{
		"exam", "examination", "test", "timetable", "time table",
		"schedule", "exam date", "exam schedule", "result", "results",
		"marks", "grade", "grades", "re-evaluation", "recheck",
		"re evaluation", "paper", "answer sheet", "hall ticket",
		"admit card", "practical exam", "internal exam", "semester exam",
	}},
	{CategoryFees, []string{
		"fee", "fees", "payment", "pay", "amount", "charges",
		"fine", "dues", "semester fee", "tuition", "tuition fee",
		"fee structure", "fee deadline", "late fee", "hostel fee",
		"library fee", "exam fee", "development fee",
	}},
	{CategoryAttendance, []string{
		"attendance", "attend", "present", "absent", "absence",
		"percentage", "leave", "proxy", "minimum attendance",
		"attendance requirement", "shortage", "detained", "condonation",
	}},
	{CategoryScholarship, []string{
		"scholarship", "scholarships", "financial aid", "stipend",
		"merit scholarship", "merit list", "need-based", "bursary",
		"sports scholarship", "government scholarship", "fee waiver",
		"financial assistance", "free ship",
	}},
	{CategoryAdmission, []string{
		"admission", "admissions", "document", "documents", "certificate",
		"enrollment", "enroll", "joining", "registration", "register",
		"marksheet", "mark sheet", "tc", "transfer certificate",
		"migration", "migration certificate", "caste certificate",
		"eligibility", "eligibility criteria",
	}},
	{CategoryLibrary, []string{
		"library", "book", "books", "borrow", "issue", "return",
		"library card", "library fine", "library hours", "reading room",
		"e-library", "digital library", "journal", "reference book",
	}},
	{CategoryGeneral, []string{
		"bonafide", "bonafide certificate", "id card", "college id",
		"hostel", "transport", "bus", "canteen", "sports",
		"college timing", "office hours", "holiday", "holidays",
		"semester", "academic calendar", "principal", "contact",
	}},
}

// Classifier maps a free-text question to one academic category using
// keyword-hit counting. It never fails: unmatched input yields general/low.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify counts case-insensitive substring hits per category; the category
// with the strictly greatest count wins. Every matched keyword, winner or
// not, feeds the retrieval stage.
func (c *Classifier) Classify(text string) Classification {
	textLower := strings.ToLower(text)

	category := CategoryGeneral
	maxMatches := 0
	var allMatched []string
	seen := make(map[string]bool)

	for _, entry := range categoryTable {
		matches := 0
		for _, keyword := range entry.keywords {
			if !strings.Contains(textLower, keyword) {
				continue
			}
			matches++
			if !seen[keyword] {
				seen[keyword] = true
				allMatched = append(allMatched, keyword)
			}
		}
		if matches > maxMatches {
			maxMatches = matches
			category = entry.name
		}
	}

	confidence := ConfidenceLow
	if maxMatches >= 2 {
		confidence = ConfidenceHigh
	}

	return Classification{
		Category:   category,
		Keywords:   allMatched,
		Confidence: confidence,
	}
}
