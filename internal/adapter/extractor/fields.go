package extractor

import (
	"regexp"
	"strings"
)

// Field enumerates the categories the extractor knows how to pull out of
// document text.
type Field int

const (
	FieldName Field = iota
	FieldSemester
	FieldGPA
	FieldEmail
	FieldPhone
	FieldGitHub
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldSemester:
		return "semester"
	case FieldGPA:
		return "gpa"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldGitHub:
		return "github"
	}
	return "unknown"
}

// rule binds a question-keyword predicate to the pattern that extracts the
// field from document text. group selects the submatch to return; 0 means the
// whole match.
type rule struct {
	field    Field
	keywords []string
	pattern  *regexp.Regexp
	group    int
}

// Rules are evaluated in priority order and dispatch stops at the first rule
// whose keyword matches the question, even when its pattern then fails on the
// text. That stop-at-predicate behavior is a contract: a question naming two
// fields is answered for the higher-priority one or not at all.
var rules = []rule{
	{
		field:    FieldName,
		keywords: []string{"name"},
		pattern:  regexp.MustCompile(`(?i)(?:name of student|name)\s*[:\-]?\s*([A-Z][a-zA-Z ,.'-]{2,})`),
		group:    1,
	},
	{
		field:    FieldSemester,
		keywords: []string{"semester", "sem"},
		pattern:  regexp.MustCompile(`(?i)(?:semester|sem)\s*[:\-]?\s*([0-9]{1,2}(?:st|nd|rd|th)?|[ivxlcdm]+)`),
		group:    1,
	},
	{
		field:    FieldGPA,
		keywords: []string{"gpa", "cgpa", "cpi", "sgpa"},
		pattern:  regexp.MustCompile(`(?i)(?:CGPA|GPA|CPI|SGPA)\s*[:=\-]?\s*(\d{1,2}(?:\.\d{1,4})?)`),
		group:    1,
	},
	{
		field:    FieldEmail,
		keywords: []string{"email"},
		pattern:  regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	},
	{
		field:    FieldPhone,
		keywords: []string{"phone", "contact", "mobile"},
		pattern:  regexp.MustCompile(`(?:\+?\d{1,3}[\s-]?)?(?:\d[\d\s-]{7,}\d)`),
	},
	{
		field:    FieldGitHub,
		keywords: []string{"github"},
		pattern:  regexp.MustCompile(`(?i)https?://github\.com/[A-Za-z0-9_.-]+`),
	},
}

// gradePattern is the question-independent GPA scan used by the summarizer.
// Unlike the query rule it accepts an unbounded integer part.
var gradePattern = regexp.MustCompile(`(?i)(?:CGPA|GPA|SGPA|CPI)\s*[:=\-]?\s*(\d+(?:\.\d{1,4})?)`)

// Extract resolves the question against the text using the first rule whose
// keyword appears in the question. It is pure and case-insensitive over both
// inputs; ok is false when no rule applies or the selected rule's pattern is
// absent from the text.
func Extract(question, text string) (string, bool) {
	q := strings.ToLower(question)
	t := strings.ReplaceAll(text, "\n", " ")

	for _, r := range rules {
		if !containsAny(q, r.keywords) {
			continue
		}
		m := r.pattern.FindStringSubmatch(t)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[r.group]), true
	}
	return "", false
}

// GradePoint scans text for a CGPA/GPA/SGPA/CPI value without any question
// driving the dispatch.
func GradePoint(text string) (string, bool) {
	m := gradePattern.FindStringSubmatch(strings.ReplaceAll(text, "\n", " "))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
