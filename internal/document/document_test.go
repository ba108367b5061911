package document

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestOpenRejectsMissingInput(t *testing.T) {
	t.Parallel()

	if _, err := Open("   "); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("blank path should be ErrNoDocument, got %v", err)
	}
	if _, err := Open(writeFixture(t, "empty.txt", "")); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("empty file should be ErrNoDocument, got %v", err)
	}
	if _, err := Open(t.TempDir()); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("directory should be ErrNoDocument, got %v", err)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap ErrNotExist, got %v", err)
	}
}

func TestOpenRejectsCorruptPDF(t *testing.T) {
	t.Parallel()

	_, err := Open(writeFixture(t, "broken.pdf", "this is not a pdf"))
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Fatalf("expected ErrUnreadablePDF, got %v", err)
	}
}

func TestOpenAcceptsPlainText(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "notes.txt", "Photosynthesis converts light.")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Name() != "notes.txt" || f.Pages() != 0 || f.Size() == 0 {
		t.Fatalf("unexpected file: %#v", f)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Photosynthesis converts light." {
		t.Fatalf("unexpected content %q", data)
	}
}
