package extract

import (
	"reflect"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"resume.pdf", false},
		{"REPORT.PDF", false},
		{"notes.txt", false},
		{"readme.md", false},
		{"archive.zip", true},
		{"image.png", true},
	}

	for _, tt := range tests {
		_, err := ForFile(tt.name)
		if tt.wantErr && err == nil {
			t.Errorf("ForFile(%q): expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", tt.name, err)
		}
	}
}

func TestPlainExtractorSinglePage(t *testing.T) {
	e := NewPlainExtractor()

	pages, err := e.Pages([]byte("all on one page"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pages, []string{"all on one page"}) {
		t.Errorf("unexpected pages: %q", pages)
	}
}

func TestPlainExtractorFormFeedBreaks(t *testing.T) {
	e := NewPlainExtractor()

	pages, err := e.Pages([]byte("page one\fpage two\fpage three"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pages, []string{"page one", "page two", "page three"}) {
		t.Errorf("unexpected pages: %q", pages)
	}
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	e := NewPDFExtractor()

	if _, err := e.Pages([]byte("definitely not a pdf")); err == nil {
		t.Error("expected error for non-PDF content")
	}
}
