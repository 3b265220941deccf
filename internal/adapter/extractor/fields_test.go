package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields(t *testing.T) {
	doc := "Name: Asha Gupta Semester: 6 CGPA: 8.75 " +
		"Contact: +91 98765 43210 Email: asha@example.com " +
		"Profile: https://github.com/asha-g"

	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"cgpa", "What is the CGPA?", "8.75"},
		{"gpa keyword", "what gpa did she get", "8.75"},
		{"email", "What is the email?", "asha@example.com"},
		{"semester", "Which semester is this?", "6"},
		{"phone", "What is the phone number?", "+91 98765 43210"},
		{"mobile keyword", "give me the mobile", "+91 98765 43210"},
		{"github", "What is the github profile?", "https://github.com/asha-g"},
		{"case insensitive question", "WHAT IS THE CGPA?", "8.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.question, doc)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractName(t *testing.T) {
	got, ok := Extract("What is the name of student?", "Name of Student: Ravi Kumar")
	assert.True(t, ok)
	assert.Equal(t, "Ravi Kumar", got)
}

func TestExtractFlattensNewlines(t *testing.T) {
	got, ok := Extract("What is the cgpa?", "CGPA:\n8.75")
	assert.True(t, ok)
	assert.Equal(t, "8.75", got)
}

func TestExtractStopsAtFirstKeyword(t *testing.T) {
	// "name" outranks "email"; when the name pattern misses, the email is
	// not tried even though it is present in the text.
	_, ok := Extract("What is the name and email?", "reach me at foo@bar.com")
	assert.False(t, ok)
}

func TestExtractNoKeyword(t *testing.T) {
	_, ok := Extract("What is the capital of France?", "Paris is the capital of France.")
	assert.False(t, ok)
}

func TestExtractMissInText(t *testing.T) {
	_, ok := Extract("What is the email?", "no address listed here")
	assert.False(t, ok)
}

func TestExtractIsPure(t *testing.T) {
	q, text := "what is the cgpa", "CGPA: 7.5"
	first, ok1 := Extract(q, text)
	second, ok2 := Extract(q, text)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestGradePoint(t *testing.T) {
	got, ok := GradePoint("overall SGPA = 9.12 this year")
	assert.True(t, ok)
	assert.Equal(t, "9.12", got)

	_, ok = GradePoint("no grades mentioned")
	assert.False(t, ok)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "gpa", FieldGPA.String())
	assert.Equal(t, "unknown", Field(99).String())
}
