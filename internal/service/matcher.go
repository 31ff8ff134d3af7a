package service

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordSynonyms expands a query token into filename vocabulary, so
// "timetable" still finds Exam_Schedule_Sem2.pdf.
var keywordSynonyms = map[string][]string{
	"timetable":   {"timetable", "time_table", "schedule", "exam_schedule", "exam_time"},
	"schedule":    {"schedule", "timetable", "time_table", "exam_schedule"},
	"exam":        {"exam", "examination", "test", "timetable", "schedule"},
	"fee":         {"fee", "fees", "fee_structure", "charges", "payment"},
	"syllabus":    {"syllabus", "curriculum", "course"},
	"handbook":    {"handbook", "manual", "guide", "rulebook", "rules"},
	"admission":   {"admission", "prospectus", "enrollment"},
	"scholarship": {"scholarship", "financial_aid", "stipend"},
	"attendance":  {"attendance", "attendance_policy"},
	"library":     {"library", "library_rules"},
	"hostel":      {"hostel", "dormitory", "hostel_rules"},
	"calendar":    {"calendar", "academic_calendar", "planner"},
	"result":      {"result", "results", "marksheet", "grades"},
	"holiday":     {"holiday", "holidays", "vacation"},
	"form":        {"form", "application", "template"},
}

var downloadIntentWords = []string{
	"timetable", "time table", "schedule", "syllabus",
	"form", "document", "pdf", "download", "get me",
	"send me", "provide", "share", "fee structure",
	"handbook", "calendar", "circular", "notice",
	"prospectus", "rulebook", "policy", "guidelines",
}

var matcherStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"can": true, "i": true, "me": true, "my": true, "what": true,
	"when": true, "where": true, "how": true, "get": true,
	"give": true, "please": true, "want": true, "need": true,
	"do": true, "for": true, "of": true, "to": true, "in": true,
	"on": true, "at": true, "and": true, "or": true,
}

var (
	separatorPattern = regexp.MustCompile(`[_\-]`)
	nonAlnumPattern  = regexp.MustCompile(`[^a-z0-9 ]`)
)

type DocumentMatch struct {
	FileName    string
	FilePath    string
	DisplayName string
	Score       int
}

// DocumentMatcher scores the files currently present in the documents
// directory against a query. No index, no cache: deleted files never
// appear and new uploads are visible on the next call.
type DocumentMatcher struct {
	dir string
}

func NewDocumentMatcher(dir string) *DocumentMatcher {
	return &DocumentMatcher{dir: dir}
}

// WantsDocument is a cheap screen for download intent, run before the full
// matching pass.
func (m *DocumentMatcher) WantsDocument(query string) bool {
	queryLower := strings.ToLower(query)
	for _, word := range downloadIntentWords {
		if strings.Contains(queryLower, word) {
			return true
		}
	}
	return false
}

// FindMatches returns at most 3 documents ordered by descending score.
// Ties keep directory listing order.
func (m *DocumentMatcher) FindMatches(query string) []DocumentMatch {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil
	}

	queryWords := tokenizeQuery(query)
	if len(queryWords) == 0 {
		return nil
	}

	var matches []DocumentMatch
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}

		score := scoreFileName(queryWords, entry.Name())
		if score == 0 {
			continue
		}

		matches = append(matches, DocumentMatch{
			FileName:    entry.Name(),
			FilePath:    filepath.Join(m.dir, entry.Name()),
			DisplayName: m.displayName(entry.Name()),
			Score:       score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > 3 {
		matches = matches[:3]
	}
	return matches
}

// scoreFileName weighs query tokens against a normalized filename:
// +3 whole-word hit, +2 substring hit, +1 synonym-expansion hit.
func scoreFileName(queryWords []string, fileName string) int {
	nameNorm := normalize(strings.TrimSuffix(strings.ToLower(fileName), ".pdf"))
	nameWords := make(map[string]bool)
	for _, w := range strings.Fields(nameNorm) {
		nameWords[w] = true
	}

	score := 0
	for _, word := range queryWords {
		if nameWords[word] {
			score += 3
		} else if strings.Contains(nameNorm, word) {
			score += 2
		}

		for _, syn := range keywordSynonyms[word] {
			if strings.Contains(nameNorm, normalize(syn)) {
				score++
			}
		}
	}

	return score
}

func tokenizeQuery(query string) []string {
	var words []string
	for _, w := range strings.Fields(normalize(query)) {
		if matcherStopwords[w] || len(w) <= 2 {
			continue
		}
		words = append(words, w)
	}
	return words
}

// normalize lowercases, turns underscores and hyphens into spaces and drops
// everything that is not alphanumeric.
func normalize(text string) string {
	text = strings.ToLower(text)
	text = separatorPattern.ReplaceAllString(text, " ")
	return nonAlnumPattern.ReplaceAllString(text, "")
}

func (m *DocumentMatcher) displayName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = separatorPattern.ReplaceAllString(name, " ")
	// cases.Caser carries state, so build one per call
	return cases.Title(language.English).String(name)
}
