package document

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoDocument is returned when no path was given or the file is empty.
	ErrNoDocument = errors.New("no document selected")
	// ErrUnreadablePDF is returned when a .pdf file has no readable pages.
	ErrUnreadablePDF = errors.New("pdf has no readable pages")
)

// File is a validated document on local disk, ready to be uploaded.
type File struct {
	path        string
	name        string
	contentType string
	size        int64
	pages       int
}

// Open validates the file at path. PDFs are parsed to make sure the backend
// receives something it can extract text from.
func Open(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNoDocument
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNoDocument)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s is empty: %w", path, ErrNoDocument)
	}

	f := &File{
		path:        path,
		name:        filepath.Base(path),
		contentType: contentTypeFor(path),
		size:        info.Size(),
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err := countPages(path)
		if err != nil {
			return nil, err
		}
		f.pages = pages
	}
	return f, nil
}

func (f *File) Name() string { return f.name }

func (f *File) ContentType() string { return f.contentType }

func (f *File) Size() int64 { return f.size }

// Pages is the PDF page count, zero for other file types.
func (f *File) Pages() int { return f.pages }

func (f *File) Path() string { return f.path }

// Open satisfies backend.Document; every call returns a fresh reader.
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func countPages(path string) (pages int, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%s: %w (%v)", filepath.Base(path), ErrUnreadablePDF, r)
		}
	}()
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrUnreadablePDF, err)
	}
	defer file.Close()
	n := reader.NumPage()
	if n == 0 {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnreadablePDF)
	}
	return n, nil
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
