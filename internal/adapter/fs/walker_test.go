package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFiltersByGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "b.pdf"))
	writeFile(t, filepath.Join(root, "c.go"))
	writeFile(t, filepath.Join(root, "sub", "d.txt"))

	w := NewWalker([]string{"**/*.txt"}, nil)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if filepath.Base(files[0].Path) != "a.txt" || filepath.Base(files[1].Path) != "d.txt" {
		t.Errorf("unexpected files: %v", files)
	}
}

func TestWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"))
	writeFile(t, filepath.Join(root, "skip", "drop.txt"))

	w := NewWalker([]string{"**/*.txt"}, []string{"skip/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if filepath.Base(files[0].Path) != "keep.txt" {
		t.Errorf("unexpected file: %s", files[0].Path)
	}
}

func TestWalkDefaultIncludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "doc.pdf"))
	writeFile(t, filepath.Join(root, "code.go"))

	w := NewWalker(nil, nil)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 {
		t.Fatalf("expected only the pdf, got %d files", len(files))
	}
}

func TestWalkSortsByPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.txt"))
	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "m.txt"))

	w := NewWalker([]string{"**/*.txt"}, nil)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(files)-1; i++ {
		if files[i].Path > files[i+1].Path {
			t.Errorf("files not sorted: %s > %s", files[i].Path, files[i+1].Path)
		}
	}
}
