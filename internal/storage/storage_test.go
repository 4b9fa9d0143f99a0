package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/afriesen/classdir/internal/course"
	"github.com/afriesen/classdir/internal/table"
)

func TestSaveLoadCatalog(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	cat := course.NewCatalog("20261", "COMS", "https://catalog.example.edu/sel/")
	cat.Add(&course.Course{
		URL:   "https://catalog.example.edu/subj/COMS/W1004-20261-001/",
		Title: "Introduction to Computer Science",
		Rows: []table.Record{
			{"Call Number": "10285"},
			{"Times": "TR 10:10-11:25"},
		},
	})
	cat.Add(&course.Course{
		URL:   "https://catalog.example.edu/subj/COMS/W3134-20261-001/",
		Error: "navigation timeout",
	})

	if err := store.SaveCatalog(cat); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	loaded, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if loaded.Term != "20261" || loaded.Subject != "COMS" {
		t.Errorf("loaded catalog header = %q/%q, want 20261/COMS", loaded.Term, loaded.Subject)
	}
	if len(loaded.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(loaded.Courses))
	}
	if got, _ := loaded.Courses[0].Field("Call Number"); got != "10285" {
		t.Errorf("Call Number = %q, want 10285", got)
	}
	if loaded.Courses[1].Error != "navigation timeout" {
		t.Errorf("error marker = %q, want navigation timeout", loaded.Courses[1].Error)
	}
}

func TestLoadCatalogMissing(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if _, err := store.LoadCatalog(); err == nil {
		t.Error("expected an error when no catalog has been written")
	}
}

func TestSavePage(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	pageURL := "https://catalog.example.edu/subj/COMS/W1004-20261-001/"
	if err := store.SavePage(pageURL, []byte("<html></html>")); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "pages"))
	if err != nil {
		t.Fatalf("reading pages dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 saved page, got %d", len(entries))
	}
	if name := entries[0].Name(); !strings.HasSuffix(name, ".html") || !strings.Contains(name, "w1004-20261-001") {
		t.Errorf("unexpected page file name: %s", name)
	}
}

func TestScreenshotPath(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	path, err := store.ScreenshotPath("https://catalog.example.edu/subj/COMS/W1004-20261-001/")
	if err != nil {
		t.Fatalf("ScreenshotPath failed: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("expected a .png path, got %s", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("screenshot directory not created: %v", err)
	}
}

func TestSlug(t *testing.T) {
	a := Slug("https://catalog.example.edu/subj/COMS/W1004-20261-001/")
	b := Slug("https://catalog.example.edu/subj/COMS/W1004-20261-001/?view=full")

	if a == b {
		t.Errorf("distinct URLs should slug differently: %q vs %q", a, b)
	}
	if strings.ContainsAny(a, "/:?#") {
		t.Errorf("slug contains unsafe characters: %q", a)
	}
	if a != Slug("https://catalog.example.edu/subj/COMS/W1004-20261-001/") {
		t.Error("slug is not deterministic")
	}
}
